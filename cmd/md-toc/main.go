package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sriram-PR/md-toc/pkg/orchestrate"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

const progName = "md-toc"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs one md-toc invocation and returns its exit status
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		prog:   progName,
		argv:   args,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
		status: orchestrate.StatusSuccess,
	}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", a.prog, err)
		if errors.Is(err, utils.ErrUsage) {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", a.prog)
		}
		return orchestrate.StatusFailure
	}
	return a.status
}
