package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/ethos/internal/scoring"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) post(path string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// askImportance pregunta una importancia [1,5] y re-pregunta hasta que sea
// válida. El rechazo con re-prompt es deliberado: nunca se clampea.
func askImportance(in *bufio.Reader, question string) int {
	for {
		fmt.Printf("Rate importance of %s (1-5): ", question)
		line, err := in.ReadString('\n')
		if err != nil {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Println("Please enter a valid number")
			continue
		}
		if n < 1 || n > 5 {
			fmt.Println("Please enter a number between 1 and 5")
			continue
		}
		return n
	}
}

func main() {
	var (
		baseURL = envOr("ETHOS_URL", "http://localhost:8080")
		out     = envOr("ETHOS_OUT", "text")
		subject string
		tk      string
	)

	cl := &client{BaseURL: baseURL, OutFormat: out, HTTP: &http.Client{Timeout: 30 * time.Second}}

	root := &cobra.Command{
		Use:   "ethos",
		Short: "CLI del agente de consumo ético (consent-gated)",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del API (env ETHOS_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")
	root.PersistentFlags().StringVar(&subject, "subject", "", "ID del sujeto dueño de los datos")
	root.PersistentFlags().StringVar(&tk, "token", "", "Consent token a presentar")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL = baseURL
		cl.OutFormat = out
	}

	requireSubjectToken := func() error {
		if subject == "" || tk == "" {
			return fmt.Errorf("--subject y --token son requeridos")
		}
		return nil
	}

	// token issue / revoke
	var issueScope, issueAgent string
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Emitir un consent token (desarrollo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" || issueScope == "" {
				return fmt.Errorf("--subject y --scope son requeridos")
			}
			status, body, err := cl.post("/v1/tokens/issue", map[string]string{
				"subject_id": subject,
				"scope":      issueScope,
				"agent_id":   issueAgent,
			})
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	issueCmd.Flags().StringVar(&issueScope, "scope", "", "Scope del token (ej. custom.ethical.values)")
	issueCmd.Flags().StringVar(&issueAgent, "agent", "", "Agent ID (default: el agente de consumo ético)")

	revokeCmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revocar un consent token (idempotente)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tk == "" {
				return fmt.Errorf("--token es requerido")
			}
			status, body, err := cl.post("/v1/tokens/revoke", map[string]string{"token": tk})
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	tokenCmd := &cobra.Command{Use: "token", Short: "Operaciones sobre consent tokens"}
	tokenCmd.AddCommand(issueCmd, revokeCmd)

	// assess (interactivo)
	assessCmd := &cobra.Command{
		Use:   "assess",
		Short: "Capturar el perfil de valores éticos (interactivo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSubjectToken(); err != nil {
				return err
			}
			fmt.Println("Ethical Values Assessment")
			fmt.Println("Rate each factor's importance to you (1-5 scale)")
			fmt.Println()

			in := bufio.NewReader(os.Stdin)
			values := scoring.Values{
				Environmental:  askImportance(in, "environmental sustainability (climate impact, waste reduction)"),
				LaborPractices: askImportance(in, "fair labor practices (worker rights, fair wages)"),
				LocalSourcing:  askImportance(in, "local sourcing vs global supply chains"),
				AnimalWelfare:  askImportance(in, "animal welfare considerations"),
				Transparency:   askImportance(in, "supply chain transparency"),
			}

			status, body, err := cl.post("/v1/agent/values/assess", map[string]any{
				"subject_id": subject,
				"token":      tk,
				"values":     values,
			})
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	// history
	var period string
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Analizar historial de compras",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSubjectToken(); err != nil {
				return err
			}
			status, body, err := cl.post("/v1/agent/history/analyze", map[string]string{
				"subject_id": subject,
				"token":      tk,
				"period":     period,
			})
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	historyCmd.Flags().StringVar(&period, "period", "", "Período a analizar (default last_6_months)")

	// search
	var query string
	var budget float64
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Buscar productos con análisis ético",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSubjectToken(); err != nil {
				return err
			}
			if query == "" {
				return fmt.Errorf("--query es requerido")
			}
			status, body, err := cl.post("/v1/agent/products/search", map[string]any{
				"subject_id": subject,
				"token":      tk,
				"query":      query,
				"budget":     budget,
			})
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	searchCmd.Flags().StringVar(&query, "query", "", "Término de búsqueda")
	searchCmd.Flags().Float64Var(&budget, "budget", 0, "Presupuesto máximo (0 = sin límite)")

	// trace
	var productURL string
	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "Trazar la cadena de suministro de un producto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSubjectToken(); err != nil {
				return err
			}
			if productURL == "" {
				return fmt.Errorf("--product-url es requerido")
			}
			status, body, err := cl.post("/v1/agent/supplychain/trace", map[string]string{
				"subject_id":  subject,
				"token":       tk,
				"product_url": productURL,
			})
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	traceCmd.Flags().StringVar(&productURL, "product-url", "", "URL del producto a trazar")

	// report
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generar el reporte integral de consumo ético",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSubjectToken(); err != nil {
				return err
			}
			status, body, err := cl.post("/v1/agent/report", map[string]string{
				"subject_id": subject,
				"token":      tk,
			})
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	root.AddCommand(tokenCmd, assessCmd, historyCmd, searchCmd, traceCmd, reportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
