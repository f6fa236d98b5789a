package main

import "github.com/strongdm/sentry-cordova-go/internal/cli"

func main() {
	cli.Execute()
}
