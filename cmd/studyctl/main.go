package main

import "github.com/studyhall/studyhall/cmd/studyctl/cmd"

func main() {
	cmd.Execute()
}
