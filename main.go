package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"threshold-dilithium/params"
	"threshold-dilithium/threshold"

	"github.com/montanaflynn/stats"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go iter= t= n= level=")
		os.Exit(1)
	}
	if len(os.Args) > 5 {
		fmt.Println("Only four args are allowed")
		os.Exit(1)
	}

	args := make(map[string]string)
	for _, arg := range os.Args[1:] {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			fmt.Printf("Invalid argument format: %s\n", arg)
			os.Exit(1)
		}
		args[parts[0]] = parts[1]
	}

	iters, err := atoiArg(args, "iter", 10)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	t, err := atoiArg(args, "t", 3)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	n, err := atoiArg(args, "n", 5)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	levelInt, err := atoiArg(args, "level", 2)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	level := params.Level(levelInt)
	handle, err := threshold.New(t, n, level)
	if err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}

	var keygen, partial, combine, verify []float64
	msg := []byte("benchmark message")

	for round := 0; round < iters; round++ {
		seed := make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			panic(err)
		}

		start := time.Now()
		shares, pk, err := handle.DistributedKeygen(seed)
		if err != nil {
			panic(err)
		}
		keygen = append(keygen, time.Since(start).Seconds())

		sessionSeed := make([]byte, 32)
		if _, err := rand.Read(sessionSeed); err != nil {
			panic(err)
		}

		start = time.Now()
		partials := make([]threshold.PartialSignature, t)
		for i := 0; i < t; i++ {
			ps, err := handle.PartialSign(msg, shares[i], sessionSeed)
			if err != nil {
				panic(err)
			}
			partials[i] = ps
		}
		partial = append(partial, time.Since(start).Seconds())

		start = time.Now()
		sig, err := handle.CombineSignatures(partials, pk)
		if err != nil {
			panic(err)
		}
		combine = append(combine, time.Since(start).Seconds())

		start = time.Now()
		ok := threshold.Verify(level, msg, sig, *pk)
		verify = append(verify, time.Since(start).Seconds())
		if !ok {
			panic("combined signature did not verify")
		}
	}

	fmt.Printf("threshold=%d/%d level=%d iterations=%d\n", t, n, levelInt, iters)
	report("keygen", keygen)
	report("partial-sign (t partials)", partial)
	report("combine", combine)
	report("verify", verify)
}

func report(label string, samples []float64) {
	mean, _ := stats.Mean(samples)
	stddev, _ := stats.StandardDeviation(samples)
	median, _ := stats.Median(samples)
	fmt.Printf("%-28s mean=%.6fs stddev=%.6fs median=%.6fs\n", label, mean, stddev, median)
}

func atoiArg(args map[string]string, key string, fallback int) (int, error) {
	v, ok := args[key]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %v", key, v)
	}
	return n, nil
}
