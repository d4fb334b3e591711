package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/config"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/obslog"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/builder"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/engine"
)

// circuitFile is the on-disk JSON shape a --circuit file is parsed from.
// Its gate types are H, X, S, CNOT, CZ, SWAP, TOFFOLI and MEASURE, which
// differs from internal/app's HTTP submission endpoint (that one takes Y
// and Z but not TOFFOLI).
type circuitFile struct {
	Qubits int `json:"qubits"`
	Gates  []struct {
		Type   string `json:"type"`
		Qubits []int  `json:"qubits"`
	} `json:"gates"`
}

func newRunCmd() *cobra.Command {
	var (
		demo    string
		path    string
		shots   int
		backend string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit a circuit and print its measurement statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := obslog.NewLogger(obslog.LoggerOptions{Debug: cfg.GetBool("debug")})
			eng := engine.New(cfg, logger)

			var circ circuit.Circuit
			if path != "" {
				circ, err = loadCircuitFile(path)
			} else {
				circ, err = builtinDemoCircuit(demo)
			}
			if err != nil {
				return err
			}

			counts, err := eng.Execute(circ, shots, backend)
			if err != nil {
				return fmt.Errorf("execute: %w", err)
			}
			printHistogram(counts, shots)
			return nil
		},
	}

	cmd.Flags().StringVar(&demo, "demo", "bell", "built-in circuit to run when --circuit is not set: bell, grover2, grover3")
	cmd.Flags().StringVar(&path, "circuit", "", "path to a JSON circuit description (overrides --demo)")
	cmd.Flags().IntVar(&shots, "shots", 1024, "number of shots")
	cmd.Flags().StringVar(&backend, "backend", "auto", "backend to execute on: auto, dense, mps, itsu")
	return cmd
}

func loadCircuitFile(path string) (circuit.Circuit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read circuit file: %w", err)
	}
	var cf circuitFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse circuit file: %w", err)
	}
	b := builder.New(builder.Q(cf.Qubits), builder.C(cf.Qubits))
	for _, g := range cf.Gates {
		switch g.Type {
		case "H":
			b.H(g.Qubits[0])
		case "X":
			b.X(g.Qubits[0])
		case "S":
			b.S(g.Qubits[0])
		case "CNOT":
			b.CNOT(g.Qubits[0], g.Qubits[1])
		case "CZ":
			b.CZ(g.Qubits[0], g.Qubits[1])
		case "SWAP":
			b.SWAP(g.Qubits[0], g.Qubits[1])
		case "TOFFOLI":
			b.Toffoli(g.Qubits[0], g.Qubits[1], g.Qubits[2])
		case "MEASURE":
			b.Measure(g.Qubits[0], g.Qubits[0])
		default:
			return nil, fmt.Errorf("unsupported gate type: %s", g.Type)
		}
	}
	return b.BuildCircuit()
}

// builtinDemoCircuit returns one of the built-in Bell/Grover demo
// circuits for the run subcommand.
func builtinDemoCircuit(name string) (circuit.Circuit, error) {
	switch name {
	case "bell":
		b := builder.New(builder.Q(2), builder.C(2))
		b.H(0).CNOT(0, 1).Measure(0, 0).Measure(1, 1)
		return b.BuildCircuit()
	case "grover2":
		b := builder.New(builder.Q(2), builder.C(2))
		b.H(0).H(1)
		b.CZ(0, 1)
		b.H(0).H(1).X(0).X(1).CZ(0, 1).X(0).X(1).H(0).H(1)
		b.Measure(0, 0).Measure(1, 1)
		return b.BuildCircuit()
	case "grover3":
		b := builder.New(builder.Q(3), builder.C(3))
		b.H(0).H(1).H(2)
		b.H(2).Toffoli(0, 1, 2).H(2)
		b.H(0).H(1).H(2).X(0).X(1).X(2)
		b.H(2).Toffoli(0, 1, 2).H(2)
		b.X(0).X(1).X(2).H(0).H(1).H(2)
		b.Measure(0, 0).Measure(1, 1).Measure(2, 2)
		return b.BuildCircuit()
	default:
		return nil, fmt.Errorf("unknown demo circuit: %s", name)
	}
}

func printHistogram(hist map[string]int, shots int) {
	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, state := range keys {
		count := hist[state]
		fmt.Printf("|%s>: %d counts (%.2f%%)\n", state, count, 100*float64(count)/float64(shots))
	}
}
