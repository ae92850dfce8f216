package main

import "task-tracker/backend/cmd"

func main() {
	cmd.Execute()
}
