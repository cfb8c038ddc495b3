// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/slotauction/co"
	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/genesis"
	"github.com/vechain/slotauction/kv"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/lvldb"
	"github.com/vechain/slotauction/metrics"
	"github.com/vechain/slotauction/thor"
)

var (
	metaBucket   = kv.Bucket("meta/")
	genesisIDKey = []byte("genesis-id")
)

func initLogger(ctx *cli.Context) {
	lvl := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	level := new(slog.LevelVar)
	level.Set(lvl)

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	} else {
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, log.IsTerminal(os.Stderr))
	}
	log.SetDefault(log.NewLogger(handler))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".org.vechain.sponsord")
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		cli.ShowAppHelp(ctx)
		return nil, errors.New("genesis flag not specified")
	}
	return genesis.LoadCustomNet(path)
}

func tickInterval(ctx *cli.Context, gene *genesis.Genesis) uint64 {
	if ctx.IsSet(tickIntervalFlag.Name) {
		if v := ctx.Uint64(tickIntervalFlag.Name); v > 0 {
			return v
		}
		log.Warn("ignored zero tick interval")
	}
	return gene.TickInterval()
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, instanceDir string) (*lvldb.LevelDB, error) {
	cacheMB := max(ctx.Int(cacheFlag.Name), 16)
	log.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 500,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open state database [%v]", dir)
	}
	return db, nil
}

func openEventDB(instanceDir string) (*eventdb.EventDB, error) {
	dir := filepath.Join(instanceDir, "events.db")
	db, err := eventdb.New(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database [%v]", dir)
	}
	return db, nil
}

func openMemMainDB() (*lvldb.LevelDB, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, errors.Wrap(err, "open state database")
	}
	return db, nil
}

func openMemEventDB() (*eventdb.EventDB, error) {
	db, err := eventdb.NewMem()
	if err != nil {
		return nil, errors.Wrap(err, "open event database")
	}
	return db, nil
}

// bindGenesis records the genesis id on first start and refuses a database created for another genesis.
func bindGenesis(store kv.Store, gene *genesis.Genesis) error {
	meta := metaBucket.NewStore(store)
	stored, err := meta.Get(genesisIDKey)
	if err != nil {
		if !meta.IsNotFound(err) {
			return errors.Wrap(err, "read genesis id")
		}
		return meta.Put(genesisIDKey, gene.ID().Bytes())
	}
	if !bytes.Equal(stored, gene.ID().Bytes()) {
		return fmt.Errorf("database was created for genesis %v, not %v", thor.BytesToBytes32(stored), gene.ID())
	}
	return nil
}

func startAPIServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func startMetricsServer(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics API addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	handler := handlers.CompressHandler(router)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/metrics", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(w io.Writer, gene *genesis.Genesis, interval uint64, tick, seq uint64, dataDir, apiURL string) {
	fmt.Fprintf(w, `Starting %v
    Network      [ %v %v ]
    Owner        [ %v ]
    Tick         [ #%v every %vs, %v operations ]
    Instance dir [ %v ]
    API portal   [ %v ]
`,
		"Sponsord-"+fullVersion(),
		gene.ID(), gene.Name(),
		gene.Owner(),
		tick, interval, seq,
		dataDir,
		apiURL)
}

func printSoloAccounts(w io.Writer) {
	tableHead := `
┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	info := tableHead
	for _, a := range genesis.DevAccounts() {
		info += fmt.Sprintf(tableContent,
			a.Address,
			thor.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)),
		)
	}
	fmt.Fprint(w, info+tableEnd+"\r\n")
}
