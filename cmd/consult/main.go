package main

import (
    "github.com/example/research-institute/internal/cli"
)

var (
    version = "dev"
    commit  = "none"
)

func main() {
    cli.SetVersionInfo(version, commit)
    cli.Execute()
}
