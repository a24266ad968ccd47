package services

import (
	"fmt"
	"testing"

	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

func BenchmarkMarkovEngine_Step(b *testing.B) {
	for _, numProducts := range []int{10, 1000, 100000} {
		b.Run(fmt.Sprintf("products_%d", numProducts), func(b *testing.B) {
			params := entities.SimulationParameters{Days: 2, NumProducts: numProducts, TotalPrice: 1e6}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				engine, err := NewDefaultMarkovEngine(params, DefaultSeed)
				if err != nil {
					b.Fatalf("NewDefaultMarkovEngine failed: %v", err)
				}
				if _, err := engine.Step(); err != nil {
					b.Fatalf("Step failed: %v", err)
				}
				b.StartTimer()

				// Day 1 is the first step that draws
				if _, err := engine.Step(); err != nil {
					b.Fatalf("Step failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkMarkovEngine_FullRun(b *testing.B) {
	params := entities.SimulationParameters{Days: 365, NumProducts: 500, TotalPrice: 2500000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine, err := NewDefaultMarkovEngine(params, DefaultSeed)
		if err != nil {
			b.Fatalf("NewDefaultMarkovEngine failed: %v", err)
		}
		for !engine.IsComplete() {
			if _, err := engine.Step(); err != nil {
				b.Fatalf("Step failed: %v", err)
			}
		}
	}
}

func BenchmarkLCG_Next(b *testing.B) {
	g := NewDefaultLCG(DefaultSeed)
	for i := 0; i < b.N; i++ {
		g.Next()
	}
}
