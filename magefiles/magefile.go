//go:build mage

// Package main contains Mage build targets for quotewise developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	"data",
	"final_quotes",
}

// sampleInventory seeds data/inventory.csv so that quote and serve work
// out of the box.
const sampleInventory = `Product Name,Category,Sub-category,Brand,Factor 1,Factor 2,Factor 3,Quantity in Stock,Reorder Level,Stock Status,Min Selling Price (Rs),Max Selling Price (MRP) (Rs),SmartBuy,ClicKart,ShopiSky,Neesho
Trail Running Shoes,Sports & Outdoors,Footwear,Stride,Weather & Seasons,Age,,50,10,In Stock,2499,3999,2599,2549,,2650
Beach Ball,Toys & Games,Outdoor Toys,Splash,Weather & Seasons,,,0,20,Out of Stock,199,349,210,,205,
Leather Wallet,Fashion & Apparel,Accessories,Hideout,Purchasing Power,Gender,,120,15,In Stock,1299,2199,1350,1399,1325,
Camping Stove,Sports & Outdoors,Camping,Blaze,Weather & Seasons,,,200,10,In Stock,1899,2999,,1999,1950,2049
`

// Init creates the project directories and a sample inventory.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	inv := filepath.Join("data", "inventory.csv")
	if _, err := os.Stat(inv); os.IsNotExist(err) {
		if err := os.WriteFile(inv, []byte(sampleInventory), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", inv, err)
		}
		fmt.Println("  ", inv, "(sample)")
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "quotewise"
	cmdPkg  = "./cmd/quotewise"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Serve builds the binary and starts the HTTP API against the sample data.
func Serve() error {
	mg.SerialDeps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}

// Stats prints project metrics: Go production/test LOC, catalog rows, and
// exported quotations.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	rows, err := countRows(filepath.Join("data", "inventory.csv"))
	if err != nil {
		return err
	}
	quotes, err := filepath.Glob(filepath.Join("final_quotes", "Quotation_*"))
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Catalog rows (data/):           %d\n", rows)
	fmt.Printf("Exported quotations:            %d\n", len(quotes))
	return nil
}

// countGoLines counts non-blank lines in production and test Go files,
// skipping hidden and underscore-prefixed directories.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countRows returns the data rows of a CSV file, or 0 when it is missing.
func countRows(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := nonBlankLines(data)
	if n > 0 {
		n--
	}
	return n, nil
}

func nonBlankLines(data []byte) int {
	count := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			count++
		}
	}
	return count
}
