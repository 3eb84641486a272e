package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ppopth/rs-listdecode/poly"
	"github.com/ppopth/rs-listdecode/rs"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/pflag"
)

func main() {
	decoder := pflag.StringP("decoder", "d", "both", "Decoder to run: unique, list or both")
	errorsFlag := pflag.IntP("errors", "e", -1, "Number of errors to decode (default: the recorded count, else the unique radius)")
	k := pflag.IntP("k", "k", 0, "Message bound (overrides the recorded k when positive)")
	multiplicity := pflag.IntP("multiplicity", "m", rs.DefaultMaxMultiplicity, "Multiplicity, or the largest one tried when --degree-bound is unset")
	degreeBound := pflag.IntP("degree-bound", "L", 0, "Weighted degree bound of the list decoder (chosen from --errors when zero)")
	logLevel := pflag.String("log-level", "info", "Log level: debug, info, warn or error")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] transcript.pb\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	if err := logging.SetLogLevel("*", *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}

	data, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	t, err := rs.UnmarshalCodeword(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *k > 0 {
		t.K = *k
	}
	if t.K < 1 {
		fmt.Fprintf(os.Stderr, "Error: transcript has no message bound, pass --k\n")
		os.Exit(1)
	}

	n := len(t.Codeword)
	e := *errorsFlag
	if e < 0 {
		e = rs.UniqueRadius(n, t.K)
		if t.Errors != nil {
			e = len(t.Errors)
		}
	}

	fmt.Printf("Field: %s\n", t.Field)
	fmt.Printf("  n = %d, k = %d, e = %d (unique radius %d)\n", n, t.K, e, rs.UniqueRadius(n, t.K))
	if t.Message != nil {
		fmt.Printf("  message: %s\n", t.Message)
		msgWord, err := rs.Encode(t.Field, t.Message, t.Codeword.Points(), t.K)
		if err == nil {
			fmt.Printf("  distance to the message: %d\n", rs.HammingDistance(msgWord, t.Codeword))
		}
	}
	fmt.Println()

	ok := true
	switch *decoder {
	case "unique":
		ok = runUnique(t, e)
	case "list":
		ok = runList(t, e, *multiplicity, *degreeBound)
	case "both":
		u := runUnique(t, e)
		l := runList(t, e, *multiplicity, *degreeBound)
		ok = u && l
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown decoder %q\n", *decoder)
		os.Exit(2)
	}
	if !ok {
		os.Exit(1)
	}
}

func runUnique(t *rs.Transcript, e int) bool {
	fmt.Print("Berlekamp-Welch... ")
	start := time.Now()
	p, err := rs.DecodeUnique(t.Field, t.Codeword, t.K, e)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("failed after %v: %v\n", elapsed, err)
		return false
	}
	fmt.Printf("%v\n  decoded: %s\n", elapsed, p)
	return report(t, []*poly.Polynomial{p})
}

func runList(t *rs.Transcript, e, m, L int) bool {
	n := len(t.Codeword)
	if L <= 0 {
		var err error
		m, L, err = rs.ChooseListParams(n, t.K, e, m)
		if err != nil {
			fmt.Printf("List decoder: %v\n", err)
			return false
		}
	}
	fmt.Printf("List decoder (m = %d, L = %d, radius %d)... ", m, L, rs.ListRadius(n, m, L))
	start := time.Now()
	list, err := rs.DecodeList(t.Field, t.Codeword, t.K, m, L)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("failed after %v: %v\n", elapsed, err)
		return false
	}
	fmt.Printf("%v, %d candidate(s)\n", elapsed, len(list))
	for _, p := range list {
		fmt.Printf("  %s (agreement %d)\n", p, rs.Agreement(p, t.Codeword))
	}
	return report(t, list)
}

// report tells whether the recorded message is among the candidates. Without
// a recorded message any non-empty result counts as success.
func report(t *rs.Transcript, candidates []*poly.Polynomial) bool {
	if t.Message == nil {
		return len(candidates) > 0
	}
	for _, p := range candidates {
		if p.Equal(t.Message) {
			fmt.Println("  message recovered")
			return true
		}
	}
	fmt.Println("  message NOT recovered")
	return false
}
