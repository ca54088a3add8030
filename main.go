package main

import "habitrack/cmd"

func main() {
	cmd.Execute()
}
