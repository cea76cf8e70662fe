package main

import "github.com/chrisdamba/foodwaste/cmd"

func main() {
	cmd.Execute()
}
