// @title Ad Video Generator API
// @version 1.0
// @description Script segmentation and clip matching for AI-generated ad videos.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
