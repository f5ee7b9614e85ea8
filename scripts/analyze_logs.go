package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// LogStats summarizes one day of gateway logs
type LogStats struct {
	Requests         int
	StatusClasses    map[string]int
	ServerErrorPaths map[string]int
	TotalErrors      int
	Panics           int
	LoginSuccess     int
	LoginFailures    int
	AdminDenied      int
	Checkouts        int
	CheckoutFailures int
	BreakerOpened    int
	UserActivities   map[string]int
	ErrorPatterns    map[string]int
}

type logLine struct {
	Level  string `json:"level"`
	Msg    string `json:"msg"`
	Path   string `json:"path"`
	Status int    `json:"status"`
}

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	numberRegex = regexp.MustCompile(`\d+`)
)

func newLogStats() *LogStats {
	return &LogStats{
		StatusClasses:    make(map[string]int),
		ServerErrorPaths: make(map[string]int),
		UserActivities:   make(map[string]int),
		ErrorPatterns:    make(map[string]int),
	}
}

func main() {
	day := flag.String("day", time.Now().Format("2006-01-02"), "Day to analyze (YYYY-MM-DD)")
	logDir := flag.String("dir", "./logs", "Log directory")
	flag.Parse()

	logFile := filepath.Join(*logDir, fmt.Sprintf("app-%s.log", *day))
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		os.Exit(1)
	}
	defer file.Close()

	stats := newLogStats()
	if err := analyze(file, stats); err != nil {
		fmt.Printf("Error reading log file %s: %v\n", logFile, err)
		os.Exit(1)
	}
	printReport(os.Stdout, *day, stats)
}

// analyze reads JSON log records; lines that are not JSON are skipped
func analyze(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line logLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			continue
		}
		record(line, stats)
	}
	return scanner.Err()
}

func record(line logLine, stats *LogStats) {
	if line.Msg == "request" {
		stats.Requests++
		stats.StatusClasses[fmt.Sprintf("%dxx", line.Status/100)]++
		if line.Status >= 500 {
			stats.ServerErrorPaths[line.Path]++
		}
		return
	}

	switch {
	case strings.HasPrefix(line.Msg, "User ") && strings.HasSuffix(line.Msg, " logged in"):
		stats.LoginSuccess++
		extractUserActivity(line.Msg, stats)
	case strings.HasPrefix(line.Msg, "Login rejected for"):
		stats.LoginFailures++
		extractUserActivity(line.Msg, stats)
	case strings.HasPrefix(line.Msg, "Non-admin user attempted admin access"):
		stats.AdminDenied++
	case strings.HasPrefix(line.Msg, "Checkout started"):
		stats.Checkouts++
	case strings.HasPrefix(line.Msg, "Checkout through"):
		stats.CheckoutFailures++
	case strings.HasPrefix(line.Msg, "Circuit breaker") && strings.HasSuffix(line.Msg, "-> open"):
		stats.BreakerOpened++
	case line.Msg == "panic recovered":
		stats.Panics++
	}

	if line.Level == "error" {
		stats.TotalErrors++
		extractErrorPattern(line.Msg, stats)
	}
}

func extractUserActivity(msg string, stats *LogStats) {
	if email := emailRegex.FindString(msg); email != "" {
		stats.UserActivities[strings.ToLower(email)]++
	}
}

// extractErrorPattern keeps the message up to its first colon with numbers
// and emails masked, so the same failure on different ids groups together.
func extractErrorPattern(msg string, stats *LogStats) {
	if i := strings.Index(msg, ":"); i > 0 {
		msg = msg[:i]
	}
	msg = emailRegex.ReplaceAllString(msg, "<email>")
	msg = numberRegex.ReplaceAllString(msg, "N")
	stats.ErrorPatterns[strings.TrimSpace(msg)]++
}

func printReport(w io.Writer, day string, stats *LogStats) {
	fmt.Fprintln(w, "\n=== Aromanza Gateway Log Report ===")
	fmt.Fprintln(w, "Day:", day)

	fmt.Fprintln(w, "\n1. Traffic:")
	fmt.Fprintf(w, "   Requests: %d\n", stats.Requests)
	for _, class := range []string{"2xx", "3xx", "4xx", "5xx"} {
		fmt.Fprintf(w, "   %s: %d\n", class, stats.StatusClasses[class])
	}
	fmt.Fprintln(w, "   Paths answering 5xx:")
	printTop(w, stats.ServerErrorPaths, 5, "responses")

	fmt.Fprintln(w, "\n2. Authentication:")
	fmt.Fprintf(w, "   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Fprintf(w, "   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Fprintf(w, "   Admin Access Denied: %d\n", stats.AdminDenied)

	fmt.Fprintln(w, "\n3. Checkout:")
	fmt.Fprintf(w, "   Started: %d\n", stats.Checkouts)
	fmt.Fprintf(w, "   Failed: %d\n", stats.CheckoutFailures)

	fmt.Fprintln(w, "\n4. Backend Health:")
	fmt.Fprintf(w, "   Circuit Breaker Opened: %d\n", stats.BreakerOpened)
	fmt.Fprintf(w, "   Panics Recovered: %d\n", stats.Panics)
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)

	fmt.Fprintln(w, "\n5. Most Active Users:")
	printTop(w, stats.UserActivities, 5, "activities")

	fmt.Fprintln(w, "\n6. Most Common Errors:")
	printTop(w, stats.ErrorPatterns, 5, "occurrences")
}

func printTop(w io.Writer, counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var entries []entry
	for k, n := range counts {
		entries = append(entries, entry{k, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count == entries[j].count {
			return entries[i].key < entries[j].key
		}
		return entries[i].count > entries[j].count
	})

	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "   %s: %d %s\n", e.key, e.count, unit)
	}
}
