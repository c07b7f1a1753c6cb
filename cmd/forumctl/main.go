package main

import "github.com/delesray/forum/cmd/forumctl/cli"

func main() {
	cli.Execute()
}
