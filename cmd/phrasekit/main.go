package main

import "github.com/klytics/phrasekit/cmd"

func main() {
	cmd.Execute()
}
