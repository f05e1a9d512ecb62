package main

import (
	"fmt"
	"os"

	"github.com/tekkamanendless/dji-video-repair/dji"
)

func main() {
	filename := os.Args[1]

	handle, err := os.Open(filename)
	if err != nil {
		fmt.Printf("Could not open file '%s': %v\n", filename, err)
		os.Exit(1)
	}

	reader, err := dji.NewReader(handle)
	if err != nil {
		fmt.Printf("Could not read file: %v\n", err)
		os.Exit(1)
	}

	plan, err := dji.Analyze(reader)
	if err != nil {
		fmt.Printf("Could not analyze file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Size: %d bytes\n", reader.Size())
	fmt.Printf("Repair: %v\n", plan.Kind)
	fmt.Printf("Recognized data at: 0x%x\n", plan.DataOffset)
	switch plan.Kind {
	case dji.RepairKindContainer:
		fmt.Printf("Recovered 'ftyp' size: %d\n", plan.FtypSize)
	case dji.RepairKindRawStream:
		fmt.Printf("Carry word: 0x%08x\n", plan.Carry)
	}

	//spew.Dump(plan)
}
