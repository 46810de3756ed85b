package urls

// Notion URLs shown in troubleshooting hints and command help

// Integrations is where internal integration secrets are created and managed.
const Integrations = "https://www.notion.so/profile/integrations"

// SharePages explains how to give an integration access to a page,
// which is required before the page appears in search results.
const SharePages = "https://developers.notion.com/docs/create-a-notion-integration#give-your-integration-page-permissions"

// Status is Notion's public status page.
const Status = "https://www.notion-status.com/"

// APIReference documents the REST endpoints the client calls.
const APIReference = "https://developers.notion.com/reference/intro"

// AppendBlockChildren documents the endpoint used to append entries.
const AppendBlockChildren = "https://developers.notion.com/reference/patch-block-children"

// CodeLanguages lists the language names Notion accepts for code blocks.
const CodeLanguages = "https://developers.notion.com/reference/block#code"
