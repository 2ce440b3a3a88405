package style

// UsageTemplate returns a cobra usage template with coloured section
// headings, or "" to keep cobra's default when colours are disabled.
func UsageTemplate() string {
	if !Enabled {
		return ""
	}

	heading := Code.Bold(true).Render
	dim := DimText.Render

	return heading("Usage") + `:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

` + heading("Aliases") + `:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

` + heading("Examples") + `:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

` + heading("Commands") + `:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }}  {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

` + heading("Flags") + `:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

` + heading("Global Flags") + `:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

` + dim(`Use "{{.CommandPath}} [command] --help" for more information about a command.`) + `{{end}}
`
}
