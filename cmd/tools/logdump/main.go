// Command logdump prints the frames of a binary session log in readable
// form.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fsae-data/datalogger/internal/frame"
	"github.com/fsae-data/datalogger/internal/units"
)

var (
	speedUnits    = flag.String("speed-units", "", "also print wheel frames as ground speed in these units ("+units.GetValidUnitsString()+")")
	circumference = flag.Float64("tire-circumference", 1.437, "rolling circumference in metres, used with -speed-units")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: logdump [-speed-units mph] <file.log> [file.log ...]")
	}
	if *speedUnits != "" && !units.IsValid(*speedUnits) {
		log.Fatalf("invalid speed units %q, valid values: %s", *speedUnits, units.GetValidUnitsString())
	}
	for _, path := range flag.Args() {
		if err := dump(path); err != nil {
			log.Fatalf("%s: %v", path, err)
		}
	}
}

func dump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d := frame.NewDecoder(f)
	for seq := 0; ; seq++ {
		fr, err := d.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", seq, err)
		}
		fmt.Printf("%10d %-6s %s\n", fr.Timestamp, frame.SensorName(fr.SensorID), describe(fr))
	}
}

func describe(f *frame.Frame) string {
	switch f.SensorID {
	case frame.SensorRangeArray:
		readings, err := f.RangeReadings()
		if err != nil {
			return err.Error()
		}
		parts := make([]string, len(readings))
		for i, v := range readings {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return strings.Join(parts, " ")
	case frame.SensorAccelerometer, frame.SensorGyroscope:
		x, y, z, err := f.Triaxial()
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("x=%d y=%d z=%d", x, y, z)
	case frame.SensorWheelSpeed:
		rpm, err := f.WheelRPM()
		if err != nil {
			return err.Error()
		}
		s := fmt.Sprintf("fl=%.1f fr=%.1f rl=%.1f rr=%.1f", rpm[0], rpm[1], rpm[2], rpm[3])
		if *speedUnits != "" {
			mean := float64(rpm[0]+rpm[1]+rpm[2]+rpm[3]) / 4
			speed := units.ConvertSpeed(units.WheelSpeedMPS(mean, *circumference), *speedUnits)
			s += fmt.Sprintf(" (%.1f %s)", speed, *speedUnits)
		}
		return s
	default:
		return fmt.Sprintf("% x", f.Payload)
	}
}
