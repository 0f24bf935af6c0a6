package main

import (
	"dragchess/ui"
	"fmt"
	"os"
)

func main() {
	if err := ui.RunDragChess(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
