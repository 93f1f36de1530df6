package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	gekko "github.com/gekko3d/gekko-physics"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	logFormat  string
	debug      bool
	steps      int
	dt         float64
	realtime   bool
	plotBody   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gekko-sim",
		Short:        "headless rigid body and GJK collision runner",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "physics config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log", "text", "log output: text or json")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run [scene.yaml]",
		Short: "step a scene and report contacts",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().IntVar(&steps, "steps", 120, "number of fixed steps")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "step size in seconds, also the realtime fixed step (defaults to config fixed_step)")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace steps against the wall clock")
	runCmd.Flags().StringVar(&plotBody, "plot", "", "plot the height of the named body")

	checkCmd := &cobra.Command{
		Use:   "check [scene.yaml]",
		Short: "print pairwise collisions of a scene's initial state",
		Args:  cobra.ExactArgs(1),
		RunE:  checkScene,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective physics config",
		RunE:  printConfig,
	}

	rootCmd.AddCommand(runCmd, checkCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*gekko.Config, error) {
	if configFile == "" {
		return gekko.DefaultConfig(), nil
	}
	return gekko.LoadConfig(configFile)
}

func newLogger() (gekko.Logger, func(), error) {
	switch logFormat {
	case "text":
		return gekko.NewDefaultLogger("gekko-sim", debug), func() {}, nil
	case "json":
		level := zapcore.InfoLevel
		if debug {
			level = zapcore.DebugLevel
		}
		config := zap.Config{
			Level:            zap.NewAtomicLevelAt(level),
			Encoding:         "json",
			EncoderConfig:    zap.NewProductionEncoderConfig(),
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			DisableCaller:    true,
		}
		z, err := config.Build()
		if err != nil {
			return nil, nil, err
		}
		logger := gekko.NewZapLogger(z, debug)
		return logger, func() { _ = logger.Sync() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", logFormat)
	}
}

func buildWorld(scenePath string) (*gekko.PhysicsWorld, *gekko.SceneDef, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, done, err := newLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	scene, err := gekko.LoadScene(scenePath)
	if err != nil {
		done()
		return nil, nil, nil, err
	}

	world := gekko.NewPhysicsWorld(cfg, logger)
	if _, err := scene.Populate(world); err != nil {
		done()
		return nil, nil, nil, err
	}
	return world, scene, done, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	world, scene, done, err := buildWorld(args[0])
	if err != nil {
		return err
	}
	defer done()

	var tracked gekko.BodyId
	var heights []float64
	if plotBody != "" {
		id, ok := world.Lookup(plotBody)
		if !ok {
			return fmt.Errorf("plot: no body named %q in scene %q", plotBody, scene.Name)
		}
		tracked = id
	}

	record := func() {
		if tracked == "" {
			return
		}
		obj, _ := world.Body(tracked)
		heights = append(heights, float64(obj.Position().Y()))
	}

	step := float32(dt)
	if step <= 0 {
		step = world.FixedStep
	}
	world.FixedStep = step

	record()
	if realtime {
		clock := gekko.NewTime(time.Now())
		for taken := 0; taken < steps; {
			time.Sleep(time.Duration(float64(step) * float64(time.Second)))
			clock.Tick(time.Now())
			taken += world.AdvanceUpTo(clock, steps-taken, record)
		}
	} else {
		for i := 0; i < steps; i++ {
			world.Step(step)
			record()
		}
	}

	printBodies(world)
	printContacts(world)

	if tracked != "" && len(heights) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(heights,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s height (y)", plotBody)),
		))
	}
	return nil
}

func checkScene(cmd *cobra.Command, args []string) error {
	world, _, done, err := buildWorld(args[0])
	if err != nil {
		return err
	}
	defer done()

	printContacts(world)
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func printBodies(world *gekko.PhysicsWorld) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPOSITION\tVELOCITY\tCOLLISION")
	for _, id := range world.Bodies() {
		obj, _ := world.Body(id)
		p, v := obj.Position(), obj.Velocity()
		fmt.Fprintf(w, "%s\t(%.3f, %.3f, %.3f)\t(%.3f, %.3f, %.3f)\t%v\n",
			world.Name(id), p.X(), p.Y(), p.Z(), v.X(), v.Y(), v.Z(), obj.CollisionEnabled())
	}
	w.Flush()
}

func printContacts(world *gekko.PhysicsWorld) {
	contacts := world.Contacts()
	if len(contacts) == 0 {
		fmt.Println("no contacts")
		return
	}
	for _, c := range contacts {
		fmt.Printf("contact: %s <-> %s\n", world.Name(c.A), world.Name(c.B))
	}
}
