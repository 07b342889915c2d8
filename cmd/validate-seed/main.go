package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/hookbin/seed"
)

/* validate-seed - Standalone CLI tool to validate a hook seed file
 * Usage: go run cmd/validate-seed/main.go [seed.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	seedFile := "seed.yaml"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}

	fmt.Printf("Validating seed file: %s\n", seedFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := seed.NewLoader()
	if err := loader.Load(seedFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hooks := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d hook(s):\n", len(hooks))

	for i, h := range hooks {
		fmt.Printf("\n%d. Hook: %s\n", i+1, h.Slug)
		if h.Description != "" {
			fmt.Printf("   Description: %s\n", h.Description)
		}
		if len(h.Metadata) > 0 {
			fmt.Printf("   Metadata:    %d key(s)\n", len(h.Metadata))
		}
	}

	fmt.Printf("\n✓ All hooks are valid!\n")
	os.Exit(0)
}
