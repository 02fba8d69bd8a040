// Package pipeline runs the parallel file-transformation pipeline: discover
// data files under the input directory, fan the per-file tasks out across a
// fixed-size worker pool, and aggregate the results into a run summary.
//
// Tasks are path-isolated (distinct input and output files), so workers
// share nothing but the task channel. A failing task is recorded and never
// cancels the rest of the run.
package pipeline
