package main

import (
	hearthcmd "github.com/hearthhq/hearth/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	hearthcmd.SetVersionInfo(version, commit)
	hearthcmd.Execute()
}
