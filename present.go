package main

import (
	"fmt"
	"io"
	"strings"
)

const bannerWidth = 50

// printResponse writes the response text framed by fixed-width banners.
func printResponse(w io.Writer, text string) {
	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "OpenAI Response:")
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, text)
	fmt.Fprintln(w, banner)
}
