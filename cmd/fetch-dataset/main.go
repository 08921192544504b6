// fetch-dataset downloads the UCI household power consumption archive and
// extracts the raw export for the analysis pipeline.
//
// Usage:
//
//	fetch-dataset
//	fetch-dataset -output data/household_power_consumption.txt -force
package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultURL = "https://archive.ics.uci.edu/static/public/235/individual+household+electric+power+consumption.zip"

func main() {
	url := flag.String("url", defaultURL, "archive URL")
	output := flag.String("output", "data/household_power_consumption.txt", "extracted output path")
	force := flag.Bool("force", false, "re-download even if the output exists")
	flag.Parse()

	if !*force {
		if _, err := os.Stat(*output); err == nil {
			log.Printf("%s already exists, skipping download (use -force to refresh)", *output)
			return
		}
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	archivePath, err := download(*url)
	if err != nil {
		log.Fatalf("downloading archive: %v", err)
	}
	defer os.Remove(archivePath)

	if err := extract(archivePath, *output); err != nil {
		log.Fatalf("extracting archive: %v", err)
	}

	info, err := os.Stat(*output)
	if err != nil {
		log.Fatalf("checking output: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *output, info.Size())
}

// download fetches the archive into a temporary file and returns its path.
func download(url string) (string, error) {
	client := &http.Client{Timeout: 5 * time.Minute}

	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "household-power-*.zip")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	log.Printf("downloaded %d bytes", n)

	return tmp.Name(), nil
}

// extract pulls the first .txt entry out of the archive into outputPath.
func extract(archivePath, outputPath string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if !strings.HasSuffix(entry.Name, ".txt") {
			continue
		}

		src, err := entry.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", entry.Name, err)
		}
		defer src.Close()

		dst, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("extracting %s: %w", entry.Name, err)
		}
		return nil
	}

	return fmt.Errorf("no .txt entry found in %s", archivePath)
}
