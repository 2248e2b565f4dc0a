package main

import "github.com/Kunxl-4568/VirtualKitchen/cmd"

func main() {
	cmd.Execute()
}
