package main

import "github.com/chrisdamba/outletplanner/cmd"

func main() {
	cmd.Execute()
}
