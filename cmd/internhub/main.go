// @title         internhub API
// @version       1.0
// @description   Приём заявок на стажировку: разбор PDF-резюме, анализ GitHub-профиля и скоринг кандидатов.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен администратора. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "internhub",
	Short: "Internship application intake portal",
	Long:  "internhub accepts internship applications, parses the PDF résumé, analyses the GitHub profile and ranks candidates for recruiters.",
	// Ошибки печатает main, usage только при неверных флагах.
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
