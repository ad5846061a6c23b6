package main

import "github.com/mikeyj777/detailed-modeling-data-analysis/cmd"

func main() {
	cmd.Execute()
}
