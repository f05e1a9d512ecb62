package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tekkamanendless/dji-video-repair/dji"
	"github.com/tekkamanendless/dji-video-repair/djiconv"
	"github.com/tekkamanendless/dji-video-repair/hexdump"
)

func main() {
	debugValue := false

	var rootCommand = &cobra.Command{
		Use:   "djirepair",
		Short: "DJI drone video file repairer",
		Long: `
This tool repairs video files from DJI quadcopter cameras (Phantom 2 Vision+,
Inspire, and similar) that were cut off before the camera could finish writing
them, typically because the battery was pulled mid-recording.

Depending on the damage, the repaired file is either a normal ".mp4" or a raw
".h264" video stream; raw streams can be played with VLC or re-wrapped into a
container with ffmpeg.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugValue {
				dji.SetLogLevel(logrus.DebugLevel)
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
			os.Exit(1)
		},
	}
	rootCommand.PersistentFlags().BoolVar(&debugValue, "debug", false, "Enable debug output")

	{
		formatCode := ""
		outputDirectory := ""
		var repairCommand = &cobra.Command{
			Use:   "repair <filename> [...]",
			Short: "Repair the given file(s)",
			Long: `
Each file is analyzed and then rewritten next to the original (or into
--output-directory) with "-repaired" added to its name.

When the container is missing outright, the video is repaired into a raw
".h264" stream, and that requires knowing which video format the camera was
recording in. Pass it with --format, or the tool will ask interactively.
`,
			Args: cobra.MinimumNArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				for _, filename := range args {
					fmt.Printf("File: %s\n", filename)
					err := repairFilename(filename, formatCode, outputDirectory)
					if err != nil {
						fmt.Printf("Error: %v\n", err)
						os.Exit(1)
					}
				}
			},
		}
		repairCommand.Flags().StringVar(&formatCode, "format", formatCode, "The video format code (see \"formats\"); if not specified, you will be asked when it matters")
		repairCommand.Flags().StringVar(&outputDirectory, "output-directory", outputDirectory, "The output directory; if not specified, the repaired files will be created next to the originals")
		rootCommand.AddCommand(repairCommand)
	}

	{
		dumpValue := false
		var byteLimit int64
		var inspectCommand = &cobra.Command{
			Use:   "inspect <filename> [...]",
			Short: "Analyze the given file(s) without repairing anything",
			Long: `
This runs the same analysis as "repair" and reports what it finds: which
repair applies, where the recognizable data starts, and a short hex preview
of the head of the file.
`,
			Args: cobra.MinimumNArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				for _, filename := range args {
					fmt.Printf("File: %s\n", filename)
					handle, reader, plan, err := analyzeFilename(filename)
					if err != nil {
						fmt.Printf("Error: %v\n", err)
						continue
					}
					fmt.Printf("Repair: %v\n", plan.Kind)
					fmt.Printf("Recognized data at: 0x%x\n", plan.DataOffset)
					switch plan.Kind {
					case dji.RepairKindContainer:
						fmt.Printf("Recovered 'ftyp' size: %d\n", plan.FtypSize)
					case dji.RepairKindRawStream:
						fmt.Printf("Carry word: 0x%08x\n", plan.Carry)
					}
					fmt.Printf("Input size: %d bytes; the repair would start reading at 0x%x\n", reader.Size(), reader.Offset())
					fmt.Printf("Repairing would produce: %s\n", outputFilename(filename, plan.Kind, ""))

					if dumpValue {
						spew.Dump(plan)
					}

					if _, err := handle.Seek(0, io.SeekStart); err == nil {
						fmt.Printf("Head of the file:\n")
						hexdump.Print(handle, byteLimit, hexdump.DefaultWidth)
					}
					handle.Close()
				}
			},
		}
		inspectCommand.Flags().BoolVar(&dumpValue, "dump", false, "Dump out everything about the analysis")
		inspectCommand.Flags().Int64Var(&byteLimit, "byte-limit", 64, "The number of bytes to preview; use 0 for the whole file")
		rootCommand.AddCommand(inspectCommand)
	}

	{
		var formatsCommand = &cobra.Command{
			Use:   "formats",
			Short: "List the supported video formats",
			Long: `
These are the formats that a raw-stream repair can inject parameter sets for.
The dimensions come from decoding each format's SPS.
`,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("Code  Format             Camera              Dimensions\n")
				for _, profile := range dji.Profiles() {
					width, height := profile.Dimensions()
					dimensions := "unknown"
					if width > 0 && height > 0 {
						dimensions = fmt.Sprintf("%dx%d", width, height)
					}
					fmt.Printf("%-4s  %-17s  %-18s  %s\n", profile.Code, profile.Name, profile.Camera, dimensions)
				}
			},
		}
		rootCommand.AddCommand(formatsCommand)
	}

	err := rootCommand.Execute()
	if err != nil {
		panic(err)
	}
	os.Exit(0)
}

// analyzeFilename opens and analyzes the given file. On success the
// returned handle is still open and the reader is positioned for the
// repair engines; the caller owns closing the handle.
func analyzeFilename(filename string) (*os.File, *dji.Reader, *dji.RepairPlan, error) {
	handle, err := os.Open(filename)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("Could not open file '%s': %v", filename, err)
	}

	reader, err := dji.NewReader(handle)
	if err != nil {
		handle.Close()
		return nil, nil, nil, err
	}

	plan, err := dji.Analyze(reader)
	if err != nil {
		handle.Close()
		return nil, nil, nil, err
	}

	return handle, reader, plan, nil
}

// repairFilename analyzes and repairs a single file.
func repairFilename(filename string, formatCode string, outputDirectory string) error {
	handle, reader, plan, err := analyzeFilename(filename)
	if err != nil {
		return err
	}
	defer handle.Close()

	var profile dji.Profile
	if plan.Kind == dji.RepairKindRawStream {
		fmt.Printf("The container cannot be rebuilt; repairing to a raw \".h264\" stream instead.\n")
		if formatCode == "" {
			formatCode = promptForFormat(os.Stdin, os.Stderr)
		}
		profile = dji.ProfileFor(formatCode)
		fmt.Printf("Using format %s: %s (%s).\n", profile.Code, profile.Name, profile.Camera)
	}

	destinationFilename := outputFilename(filename, plan.Kind, outputDirectory)
	out, err := os.Create(destinationFilename)
	if err != nil {
		return fmt.Errorf("Couldn't create output file: %v", err)
	}
	defer out.Close()
	writer := bufio.NewWriter(out)

	switch plan.Kind {
	case dji.RepairKindContainer:
		err = djiconv.WriteMP4(writer, reader, plan)
	case dji.RepairKindRawStream:
		err = djiconv.WriteAnnexB(writer, reader, plan, profile)
	default:
		err = fmt.Errorf("No repair is available for this file")
	}
	if err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("Could not flush the output file: %v", err)
	}

	fmt.Printf("-> %s\n", destinationFilename)
	if plan.Kind == dji.RepairKindRawStream {
		fmt.Printf("The repaired file is a raw H.264 stream; VLC can play it directly, and ffmpeg can re-wrap it into an \".mp4\".\n")
		fmt.Printf("If it does not play correctly, then the format guess was probably wrong; run the repair again with another --format.\n")
	}
	return nil
}

// outputFilename derives the repaired filename: the input's base name
// with "-repaired" added and the extension matching the repair kind.
func outputFilename(inputFile string, kind dji.RepairKind, outputDirectory string) string {
	suffix := ".mp4"
	if kind == dji.RepairKindRawStream {
		suffix = ".h264"
	}

	baseName := strings.TrimSuffix(path.Base(inputFile), path.Ext(inputFile))
	destinationFolder := outputDirectory
	if len(destinationFolder) == 0 {
		destinationFolder = path.Dir(inputFile)
	}
	return strings.TrimSuffix(destinationFolder, "/") + "/" + baseName + "-repaired" + suffix
}

// promptForFormat interactively asks which video format the camera was
// recording in. It keeps asking until it gets a known format code; if
// the input runs out, it falls back to the default format.
func promptForFormat(in io.Reader, out io.Writer) string {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Which video format was the camera recording in?\n")
		for _, profile := range dji.Profiles() {
			fmt.Fprintf(out, "\t%s: %s (%s)\n", profile.Code, profile.Name, profile.Camera)
		}
		fmt.Fprintf(out, "(If you are unsure, guess as follows:\n")
		fmt.Fprintf(out, "\tFor a Phantom 2 Vision+, enter: 8\n")
		fmt.Fprintf(out, "\tFor an Inspire, enter: 2\n")
		fmt.Fprintf(out, " If the repaired file turns out to be unplayable, then the guess was wrong;\n")
		fmt.Fprintf(out, " run the repair again with another format.)\n")
		fmt.Fprintf(out, "Format: ")
		if !scanner.Scan() {
			fmt.Fprintf(out, "\n")
			return dji.DefaultProfileCode
		}
		entry := strings.TrimSpace(scanner.Text())
		if dji.KnownProfileCode(entry) {
			return entry
		}
		fmt.Fprintf(out, "Invalid entry!\n")
	}
}
