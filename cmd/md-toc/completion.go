package main

import (
	"fmt"
)

const completionHelp = `To enable command-line completion for %[1]s in Bash-compatible shells,
add the following line to your shell startup file (e.g. ~/.bashrc):

    eval "$(%[1]s --bash-completion)"

Other shells are supported through the completion command:

    %[1]s completion zsh
    %[1]s completion fish
    %[1]s completion powershell

Run '%[1]s completion <shell> --help' for installation details.
`

func (a *app) printCompletionHelp() error {
	_, err := fmt.Fprintf(a.stdout, completionHelp, a.prog)
	return err
}
