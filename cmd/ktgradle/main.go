// ktgradle adds Kotlin support to Gradle Kotlin DSL build scripts.
package main

import "github.com/albertocavalcante/ktgradle/cmd/ktgradle/internal/cli"

func main() {
	cli.Execute()
}
