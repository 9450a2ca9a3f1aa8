package main

import "github.com/proflab-dev/e2e-runner/pkg/cli"

func main() {
	cli.Execute()
}
