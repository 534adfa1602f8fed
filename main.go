package main

import "bookmark-manager/cmd"

func main() {
	cmd.Execute()
}
