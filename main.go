package main

import "admin-dash/cmd"

func main() {
	cmd.Execute()
}
