package cmd

import (
	"fmt"
	"math"
	"time"

	vortexje "github.com/baayen-heinz/vortexje-go"
	"github.com/baayen-heinz/vortexje-go/config"
	"github.com/baayen-heinz/vortexje-go/meshes"
	"github.com/baayen-heinz/vortexje-go/numerics"
)

// scenario builds the bodies for one of the worked examples and registers
// them with solver, returning a function that updates every body's
// kinematics from cs.Bodies for time t, and (for scenarios with a single
// primary lifting surface) that surface, for optional Cp-chart diagnostics.
type scenario func(solver *vortexje.Solver, cs config.Case) (updateKinematics func(t float64), diagnosticSurface vortexje.LiftingSurface)

var scenarios = map[string]scenario{
	"sphere":           sphereScenario,
	"naca0012":         naca0012Scenario,
	"elliptic":         ellipticScenario,
	"oscillating-foil": oscillatingFoilScenario,
	"vawt":             vawtScenario,
}

func bodyFromSchedule(cs config.Case, id string) (*vortexje.Body, config.KinematicsSchedule) {
	body := vortexje.NewBody(id)
	schedule := cs.Bodies[id]
	linear, angular := schedule.Evaluate(0)
	body.Velocity = linear
	body.AngularVelocity = angular
	return body, schedule
}

func addLiftingSurface(body *vortexje.Body, ls *meshes.LiftingSurface) {
	wake := meshes.NewWake(ls.ID()+"_wake", ls.NSpanwiseNodes(), ls.NSpanwisePanels())
	body.AddLiftingSurface(ls, wake, vortexje.NullBoundaryLayer{})
}

func sphereScenario(solver *vortexje.Solver, cs config.Case) (func(float64), vortexje.LiftingSurface) {
	body, schedule := bodyFromSchedule(cs, "sphere")
	body.AddNonLiftingSurface(meshes.NewSphere(1.0, 16, 24))
	solver.AddBody(body)

	return func(t float64) {
		linear, angular := schedule.Evaluate(t)
		body.Velocity, body.AngularVelocity = linear, angular
	}, nil
}

func naca0012Scenario(solver *vortexje.Solver, cs config.Case) (func(float64), vortexje.LiftingSurface) {
	body, schedule := bodyFromSchedule(cs, "wing")
	ls := meshes.NewNACA0012Wing(4.0, 1.0, 5*math.Pi/180, 21, 24)
	addLiftingSurface(body, ls)
	solver.AddBody(body)

	return func(t float64) {
		linear, angular := schedule.Evaluate(t)
		body.Velocity, body.AngularVelocity = linear, angular
	}, ls
}

func ellipticScenario(solver *vortexje.Solver, cs config.Case) (func(float64), vortexje.LiftingSurface) {
	body, schedule := bodyFromSchedule(cs, "wing")
	ls := meshes.NewEllipticWing(6.0, 1.0, 4*math.Pi/180, 21, 32)
	addLiftingSurface(body, ls)
	solver.AddBody(body)

	return func(t float64) {
		linear, angular := schedule.Evaluate(t)
		body.Velocity, body.AngularVelocity = linear, angular
	}, ls
}

func oscillatingFoilScenario(solver *vortexje.Solver, cs config.Case) (func(float64), vortexje.LiftingSurface) {
	body, schedule := bodyFromSchedule(cs, "wing")
	body.ReferencePoint = vortexje.Vector3{0.25, 0, 0}
	ls := meshes.NewNACA0012Wing(2.0, 1.0, 0, 21, 12)
	addLiftingSurface(body, ls)
	solver.AddBody(body)

	return func(t float64) {
		linear, angular := schedule.Evaluate(t)
		body.Velocity, body.AngularVelocity = linear, angular
	}, ls
}

func vawtScenario(solver *vortexje.Solver, cs config.Case) (func(float64), vortexje.LiftingSurface) {
	const radius, chord, height = 1.0, 0.2, 2.0

	body, schedule := bodyFromSchedule(cs, "rotor")

	blade0 := meshes.NewVAWTBlade("blade0", radius, chord, height, 0, 13, 16)
	blade1 := meshes.NewVAWTBlade("blade1", radius, chord, height, math.Pi, 13, 16)
	addLiftingSurface(body, blade0)
	addLiftingSurface(body, blade1)

	solver.AddBody(body)

	return func(t float64) {
		linear, angular := schedule.Evaluate(t)
		body.Velocity, body.AngularVelocity = linear, angular
	}, blade0
}

// RunCase builds and solves one of the registered worked examples,
// stepping the solver cs.NumSteps times and logging each step. When graph
// is set and the scenario has a primary lifting surface, its chordwise
// pressure distribution is plotted after every step.
func RunCase(name string, cs config.Case, writer vortexje.SurfaceWriter, graph bool) error {
	build, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("cmd: unknown case %q", name)
	}

	solver := vortexje.NewSolver(cs.LogFolder)
	solver.SetFreestreamVelocity(cs.Freestream)
	solver.SetFluidDensity(cs.Density)

	updateKinematics, diagnosticSurface := build(solver, cs)

	var chart *numerics.CpChart
	if graph && diagnosticSurface != nil {
		chart = numerics.NewCpChart(800, 600, -0.5, 1.5, -3, 1.5)
	}

	solver.InitializeWakes(cs.TimeStep, cs.Parameters.ConvectWake, cs.Parameters.StaticWakeLength)

	for step := 0; step < cs.NumSteps; step++ {
		t := float64(step) * cs.TimeStep
		updateKinematics(t)

		if !solver.Solve(cs.TimeStep, true, cs.Parameters) {
			return fmt.Errorf("cmd: case %q failed to converge at step %d", name, step)
		}

		if err := solver.Log(step, writer); err != nil {
			return fmt.Errorf("cmd: logging step %d: %w", step, err)
		}

		if chart != nil {
			plotPressureDistribution(chart, solver, diagnosticSurface, fmt.Sprintf("step_%d", step))
		}

		solver.UpdateWakes(cs.TimeStep, cs.Parameters)
	}

	return nil
}

func plotPressureDistribution(chart *numerics.CpChart, solver *vortexje.Solver, surface vortexje.LiftingSurface, name string) {
	n := surface.NPanels()
	x := make([]float64, n)
	cp := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = surface.PanelCollocationPoint(i, false)[0]
		cp[i] = solver.PressureCoefficient(surface, i)
	}
	chart.Plot(10*time.Millisecond, x, cp, 0, name)
}
