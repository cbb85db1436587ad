// Package harness replays scripted tick/tock scenarios against an
// IntervalTimer and checks the result.
//
// # Scenario Format
//
// Scenarios are YAML or CUE files with the following structure:
//
//	name: interleaved_io_cpu
//	description: "Two tickers overlap"
//	pairing: fifo        # fifo (default) | nested
//	strict: false
//	steps:
//	  - {tick: io,  at: 0}
//	  - {tick: cpu, at: 5}
//	  - {tock: io,  at: 20}
//	  - {tock: cpu, at: 40}
//	expect:
//	  rows:
//	    - {ticker: io,  timer: 20}
//	    - {ticker: cpu, timer: 35}
//
// A scenario that should fail finalize names the error instead of rows:
//
//	expect:
//	  error: {code: UNMATCHED_TOCK, ticker: y, ordinal: 1}
//
// Each step carries exactly one of tick or tock. The at field is the clock
// reading in nanoseconds and must not decrease from step to step.
//
// # Deterministic Testing
//
// Steps run on a testutil.ManualClock, so every duration is exact and the
// same scenario always produces the same snapshot. Snapshots are canonical
// JSON and compared with goldie:
//
//	go test ./internal/harness -update
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/interleaved.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
