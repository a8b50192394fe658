package main

import "strings"

// optionalValueFlags maps the flags whose value may be omitted to the value
// they take when given bare.
var optionalValueFlags = map[string]string{
	"--tags":                 "",
	"--load-dotenv":          "",
	"--load-dotenv-override": "",
}

// valueFlags always take the next argument as their value.
var valueFlags = map[string]bool{
	"-f": true, "--function": true,
	"-e": true, "--env-var": true,
	"--bin-dir":           true,
	"--assume-role":       true,
	"--region":            true,
	"--role-session-name": true,
	"--config":            true,
}

// normalizeArgs rewrites "--flag value" and bare "--flag" for the
// optionalValueFlags into the "--flag=value" form, and moves positional
// arguments after every flag so flags may appear on either side of the main
// package. An optional value is never taken if that would leave no main
// package.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	flags := make([]string, 0, len(args))
	var positionals []string
	dashDash := false

	lastOptional, lastConsumed := -1, ""
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			dashDash = true
			positionals = append(positionals, args[i+1:]...)
			i = len(args)
		case valueFlags[arg]:
			flags = append(flags, arg)
			if i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
		case isOptionalValueFlag(arg):
			if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
				lastOptional, lastConsumed = len(flags), args[next]
				flags = append(flags, arg+"="+args[next])
				i = next
				continue
			}
			flags = append(flags, arg+"="+optionalValueFlags[arg])
		case strings.HasPrefix(arg, "-") && arg != "-":
			flags = append(flags, arg)
		default:
			positionals = append(positionals, arg)
		}
	}

	if len(positionals) == 0 && lastOptional >= 0 {
		name, _, _ := strings.Cut(flags[lastOptional], "=")
		flags[lastOptional] = name + "=" + optionalValueFlags[name]
		positionals = append(positionals, lastConsumed)
	}

	out := append(make([]string, 0, len(args)+1), args[0])
	out = append(out, flags...)
	if dashDash {
		out = append(out, "--")
	}
	return append(out, positionals...)
}

func isOptionalValueFlag(arg string) bool {
	_, ok := optionalValueFlags[arg]
	return ok
}
