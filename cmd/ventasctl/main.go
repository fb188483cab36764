// ventasctl carga archivos de ventas y genera el reporte y el payload del tablero sin levantar la API.
//
// Uso:
//
//	ventasctl ingest <ventes.csv> [más archivos]
//	ventasctl report [-format json|csv|pdf] [-source db|csv] [-csv ventes.csv] [-out dir]
//	                 [-start YYYY-MM-DD] [-end YYYY-MM-DD] [-store A,B] [-product X,Y]
//	ventasctl dashboard [-source db|csv] [-csv ventes.csv] [-out dashboard_data.js]
//	ventasctl schema
//	ventasctl token -user ops [-role admin|viewer] [-exp 60]
//
// La conexión al almacén se toma de la configuración (DB_DRIVER, DATABASE_URL, SQLITE_PATH, ...).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/ventas-analytics/pkg/config"
	"github.com/jhoicas/ventas-analytics/pkg/logger"
)

const usage = `uso: ventasctl <comando> [opciones]

comandos:
  ingest     carga uno o más CSV de ventas en el almacén
  report     genera rapport_ventes (json, csv o pdf)
  dashboard  regenera dashboard_data.js
  schema     crea las tablas si no existen
  token      emite un JWT para las rutas protegidas
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ventasctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("falta el comando")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	// stdout queda para los resultados; los logs van a stderr
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
	cli := &cli{cfg: cfg, log: log.Zerolog(), stdout: stdout}

	switch args[0] {
	case "ingest":
		return cli.ingest(ctx, args[1:])
	case "report":
		return cli.report(ctx, args[1:])
	case "dashboard":
		return cli.dashboard(ctx, args[1:])
	case "schema":
		return cli.schema(ctx)
	case "token":
		return cli.token(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	fmt.Fprint(stdout, usage)
	return fmt.Errorf("comando desconocido %q", args[0])
}
