package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/format"
	"github.com/joshuapare/arenakit/internal/logger"
	"github.com/joshuapare/arenakit/internal/region"
)

var (
	runSize           int
	runBlock          int
	runSource         string
	runFile           string
	runSplitThreshold int
	runZeroFill       bool
	runKeep           bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&runSize, "size", 118, "Region size in bytes")
	cmd.Flags().IntVar(&runBlock, "block", 15, "Payload bytes per allocation")
	cmd.Flags().StringVar(&runSource, "source", "heap", "Region source: heap, mmap or file")
	cmd.Flags().StringVar(&runFile, "file", "", "Arena file for --source file")
	cmd.Flags().
		IntVar(&runSplitThreshold, "split-threshold", arena.DefaultSplitThreshold, "Largest remainder absorbed instead of split")
	cmd.Flags().BoolVar(&runZeroFill, "zero-fill", true, "Zero the payload area on init")
	cmd.Flags().BoolVar(&runKeep, "keep", false, "Leave blocks allocated (useful with --source file)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the fixed allocation workload",
		Long: `The run command initializes an arena, allocates fixed-size blocks until the
remaining space is no larger than one block, then frees every allocation in
reverse order and reports the outcome.

Example:
  arenactl run
  arenactl run --size 4096 --block 100
  arenactl run --source file --file arena.bin --keep
  arenactl run --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun()
		},
	}
	return cmd
}

// RunReport is the outcome of one workload run.
type RunReport struct {
	RegionSize     int     `json:"region_size"`
	BlockSize      int     `json:"block_size"`
	Source         string  `json:"source"`
	FirstFree      int     `json:"first_free"`
	Attempts       int     `json:"attempts"`
	Allocated      int     `json:"allocated"`
	Freed          int     `json:"freed"`
	SuccessRate    float64 `json:"success_rate"`
	FreeBefore     []int   `json:"free_before"`
	FreeAfterAlloc []int   `json:"free_after_alloc"`
	FreeAfterFree  []int   `json:"free_after_free"`
	Complete       bool    `json:"complete"`
}

func runRun() error {
	if runBlock <= 0 {
		return fmt.Errorf("--block must be positive, got %d", runBlock)
	}

	data, cleanup, err := openRegion(runSource, runFile, runSize)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			logger.Error("region cleanup failed", "err", cerr)
		}
	}()

	a, err := arena.Init(data, &arena.Options{
		ZeroFill:       runZeroFill,
		SplitThreshold: runSplitThreshold,
		Logger:         logger.L,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize arena: %w", err)
	}
	logger.Info("arena initialized", "source", runSource, "size", len(data), "capacity", a.Capacity())

	report, err := runWorkload(a, len(data), runBlock, !runKeep)
	if err != nil {
		return err
	}
	report.Source = runSource

	if jsonOut {
		return printJSON(report)
	}
	printRunReport(report)
	if verbose && !quiet {
		a.WriteStats(os.Stdout)
	}
	return nil
}

// runWorkload allocates blockSize payloads while the nominal remaining space
// regionSize - i*blockSize exceeds one block, filling each payload, then frees
// them in reverse order unless free is false.
func runWorkload(a *arena.Arena, regionSize, blockSize int, free bool) (RunReport, error) {
	r := RunReport{
		RegionSize: regionSize,
		BlockSize:  blockSize,
		FreeBefore: a.FreeSizes(),
	}
	if len(r.FreeBefore) > 0 {
		r.FirstFree = r.FreeBefore[0]
	}

	var refs []arena.Ref
	for i := 0; regionSize-i*blockSize > blockSize; i++ {
		r.Attempts++
		ref, payload, err := a.Alloc(blockSize)
		if errors.Is(err, arena.ErrOutOfMemory) {
			logger.Debug("workload alloc failed", "attempt", i, "size", blockSize)
			printVerbose("Memory with size %d cannot be allocated\n", blockSize)
			continue
		}
		if err != nil {
			return r, err
		}
		clear(payload)
		refs = append(refs, ref)
		logger.Debug("workload alloc", "attempt", i, "size", blockSize, "ref", ref)
		printVerbose("Block of size %d was allocated at 0x%X\n", blockSize, ref)
	}
	r.Allocated = len(refs)
	if r.Attempts > 0 {
		r.SuccessRate = float64(r.Allocated) / float64(r.Attempts) * 100.0
	}
	r.FreeAfterAlloc = a.FreeSizes()

	if free {
		for i := len(refs) - 1; i >= 0; i-- {
			if err := a.Free(refs[i]); err != nil {
				logger.Warn("free failed", "ref", refs[i], "err", err)
				continue
			}
			r.Freed++
			logger.Debug("workload free", "ref", refs[i])
			printVerbose("Block 0x%X was released\n", refs[i])
		}
	}
	r.FreeAfterFree = a.FreeSizes()
	r.Complete = free && r.Freed == r.Allocated
	logger.Info("workload finished",
		"attempts", r.Attempts,
		"allocated", r.Allocated,
		"freed", r.Freed,
		"free_blocks", len(r.FreeAfterFree))

	if err := a.Check(); err != nil {
		return r, err
	}
	return r, nil
}

func printRunReport(r RunReport) {
	if quiet {
		return
	}
	p := message.NewPrinter(language.English)
	p.Printf("Memory initialized, first free block %d (%s region, %d bytes)\n",
		r.FirstFree, r.Source, r.RegionSize)
	p.Printf("%s\n", freeListString(r.FreeBefore))
	p.Printf("%s\n", freeListString(r.FreeAfterAlloc))
	p.Printf("\nNumber of allocated %d, ideal case: %d, success rate %.2f%%\n",
		r.Allocated, r.Attempts, r.SuccessRate)
	p.Printf("Upper bound: %d blocks of %d + %d header bytes\n",
		(r.RegionSize-format.DescriptorSize)/(r.BlockSize+format.HeaderSize), r.BlockSize, format.HeaderSize)
	if r.Complete {
		p.Printf("Deallocation was successful\n")
		p.Printf("%s\n", freeListString(r.FreeAfterFree))
	} else if r.Freed > 0 {
		p.Printf("Deallocated %d of %d blocks\n", r.Freed, r.Allocated)
	}
}

// freeListString renders free magnitudes as "-> 55 -> 24 -> NULL".
func freeListString(sizes []int) string {
	var sb strings.Builder
	for _, n := range sizes {
		fmt.Fprintf(&sb, "-> %d ", n)
	}
	sb.WriteString("-> NULL")
	return sb.String()
}

// openRegion obtains a region of size bytes from the named source.
func openRegion(source, path string, size int) ([]byte, func() error, error) {
	switch source {
	case "heap":
		return region.Heap(size)
	case "mmap":
		return region.Anonymous(size)
	case "file":
		if path == "" {
			return nil, nil, errors.New("--source file requires --file")
		}
		return region.MapFile(path, size)
	default:
		return nil, nil, fmt.Errorf("unknown region source %q (want heap, mmap or file)", source)
	}
}
