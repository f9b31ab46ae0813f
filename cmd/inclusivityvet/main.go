// Command inclusivityvet runs the inclusivity analyzer as a standalone vet
// tool:
//
//	go vet -vettool=$(which inclusivityvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/dshills/inclusivity/internal/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
