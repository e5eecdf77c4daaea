// Package ga provides a simple generational genetic algorithm for
// continuous-parameter optimization.
//
// A population of fixed-length real vectors is evolved toward higher fitness.
// Each step selects the fittest vectors as parents, combines them by
// single-point crossover, mutates one gene per offspring with Gaussian noise,
// clamps every gene to the configured bounds, and keeps the best Size vectors
// of parents and offspring together (elitist truncation).
//
// Basic usage:
//
//	// Load configuration
//	config, err := ga.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Maximise -(x^2 + y^2)
//	fitness := ga.Func2(func(x, y float64) float64 { return -(x*x + y*y) })
//
//	evo, err := ga.NewEvolution(config, fitness)
//	if err != nil {
//		log.Fatalf("Error creating evolution: %v", err)
//	}
//
//	for i := 0; i < 100; i++ {
//		if err := evo.Step(); err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//	}
//
//	if sol, ok := evo.Solution(); ok {
//		fmt.Println(sol.BestIndividual, sol.BestScore)
//	}
package ga
