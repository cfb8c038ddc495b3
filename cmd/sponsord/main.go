// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/genesis"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/lvldb"
	"github.com/vechain/slotauction/metrics"
)

var (
	version       string
	gitCommit     string
	gitTag        string
	copyrightYear string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Sponsord",
		Usage:     "Sponsorship slot auction node",
		Copyright: fmt.Sprintf("2018-%s VeChain Foundation <https://vechain.org/>", copyrightYear),
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			tickIntervalFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "run with the dev genesis for test & dev",
				Flags: []cli.Flag{
					dataDirFlag,
					cacheFlag,
					apiAddrFlag,
					apiCorsFlag,
					apiEventsLimitFlag,
					enableAPILogsFlag,
					apiSlowQueriesThresholdFlag,
					tickIntervalFlag,
					persistFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: soloAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	initLogger(ctx)
	// meters are bound on first use
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return err
	}

	mainDB, err := openMainDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing state database..."); mainDB.Close() }()

	eventDB, err := openEventDB(instanceDir)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing event database..."); eventDB.Close() }()

	svc := &service{
		gene:     gene,
		mainDB:   mainDB,
		eventDB:  eventDB,
		dataDir:  instanceDir,
		interval: tickInterval(ctx, gene),
	}
	return svc.run(exitSignal, ctx)
}

func soloAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene := genesis.NewDevnet()

	var (
		mainDB      *lvldb.LevelDB
		eventDB     *eventdb.EventDB
		instanceDir string
		err         error
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if mainDB, err = openMainDB(ctx, instanceDir); err != nil {
			return err
		}
		if eventDB, err = openEventDB(instanceDir); err != nil {
			mainDB.Close()
			return err
		}
	} else {
		instanceDir = "Memory"
		if mainDB, err = openMemMainDB(); err != nil {
			return err
		}
		if eventDB, err = openMemEventDB(); err != nil {
			mainDB.Close()
			return err
		}
	}
	defer func() { log.Info("closing state database..."); mainDB.Close() }()
	defer func() { log.Info("closing event database..."); eventDB.Close() }()

	svc := &service{
		gene:     gene,
		mainDB:   mainDB,
		eventDB:  eventDB,
		dataDir:  instanceDir,
		interval: tickInterval(ctx, gene),
		solo:     true,
	}
	return svc.run(exitSignal, ctx)
}
