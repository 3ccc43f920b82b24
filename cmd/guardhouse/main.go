// Command guardhouse runs the security agency administration backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rqa-security/guardhouse/pkg/commands"
)

func main() {
	root := commands.NewRootCommand(commands.Config{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
