package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A project scaffolding tool"
	MsgNewShort        = "Create a new project from a template"
	MsgListShort       = "List all available templates"
	MsgListLong        = "List displays all templates found in the templates root."
	MsgInfoShort       = "Show details about a template"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No files were written"
	MsgCreatedFormat   = "\nCreated %s from template '%s'\n"
	MsgVariantsFormat  = "Active variants: %s\n"
	MsgScriptsHeader   = "\nAvailable scripts:\n"
	MsgScriptItem      = "  %s run %s\n"
	MsgNoTemplates     = "No templates found."
	MsgInstallSkipped  = "Skipping dependency install (no package manager found)."

	// Flag descriptions
	MsgFlagVariant       = "Variant to activate (repeatable)"
	MsgFlagName          = "Project name (also the destination directory name)"
	MsgFlagScope         = "Scope prefix for the package name, e.g. @acme"
	MsgFlagOutput        = "Parent directory to create the project in"
	MsgFlagTemplatesRoot = "Directory holding template definitions"
	MsgFlagDryRun        = "Preview the result without writing files"
	MsgFlagInstall       = "Run the package manager install step after scaffolding"
	MsgFlagNoInput       = "Never prompt; fail if required values are missing"
)
