// kardexctl evalúa el stock de medicamentos desde un CSV exportado del kardex, sin servidor
// ni base de datos. Pensado para revisiones diarias y para generar el pedido mensual.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "kardexctl",
		Short:        "Evaluación de stock de medicamentos desde CSV",
		SilenceUsage: true,
	}

	opts := &options{}
	opts.bind(rootCmd)

	rootCmd.AddCommand(assessCmd(opts))
	rootCmd.AddCommand(reportCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
