// Терминальный дашборд продаж поверх шлюза отчётов.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error: "), err)
		os.Exit(1)
	}
}
