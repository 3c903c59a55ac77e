package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/fuel-blend/internal/blend"
	"github.com/iwvelando/fuel-blend/internal/config"
	"github.com/iwvelando/fuel-blend/internal/server"
	"github.com/iwvelando/fuel-blend/pkg/output"
	"github.com/iwvelando/fuel-blend/pkg/testutil"
	"go.uber.org/zap"
)

const testConfigPath = "../test_config.yaml"

// solveConfig runs the configuration through the same steps as the solve command.
func solveConfig(t *testing.T, conf *config.Configuration) (blend.Request, output.Report) {
	t.Helper()
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	req, err := conf.Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	result, err := blend.NewSolver(zap.NewNop()).Solve(req)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	report, err := output.NewReport(req, result, conf.FluidA.Name, conf.FluidB.Name, conf.Output.Currency, conf.Blend.ParityRatio)
	if err != nil {
		t.Fatalf("NewReport() error = %v", err)
	}
	return req, report
}

// TestBudgetBaseline checks the example configuration against known figures.
func TestBudgetBaseline(t *testing.T) {
	conf, err := config.LoadConfiguration(testConfigPath, nil)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.Warnings(); len(warnings) != 0 {
		t.Fatalf("expected no configuration warnings, got %v", warnings)
	}

	_, report := solveConfig(t, conf)
	res := report.Result

	testutil.AssertNear(t, "amountA", res.AmountA, 77.9968, 0.001)
	testutil.AssertNear(t, "amountB", res.AmountB, 22.0032, 0.001)
	testutil.AssertNear(t, "amountA+amountB", res.AmountA+res.AmountB, 100, 1e-9)
	testutil.AssertNear(t, "costA+costB", res.CostA+res.CostB, res.TotalCost, 1e-9)
	testutil.AssertNear(t, "volumeA", res.VolumeA, res.AmountA/4.99, 1e-9)
	testutil.AssertNear(t, "volumeB", res.VolumeB, res.AmountB/3.06, 1e-9)
	testutil.AssertNear(t, "achievedPurity", res.AchievedPurity, 0.5, 0.01)
	testutil.AssertNear(t, "equalSplitPurity", report.EqualSplitPurity, 0.27749, 0.0001)

	if res.Iterations != 14 {
		t.Errorf("expected 14 iterations, got %d", res.Iterations)
	}
	if !res.Increasing {
		t.Errorf("expected purity to increase with the amount of fluid A")
	}

	var buf bytes.Buffer
	if err := output.PrettyFormat(&buf, report); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	for _, want := range []string{
		"--- Blend for a budget of R$ 100.00 ---",
		"R$ 78.00",
		"R$ 22.00",
		"ethanol pays off",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, buf.String())
		}
	}
}

// TestVolumeBaseline checks the 48 liter volume split.
func TestVolumeBaseline(t *testing.T) {
	path := testutil.WriteConfig(t, "volume.yaml", `blend:
  total: 48
  targetPurity: 0.5
fluidA:
  dilutionFraction: 0.27
`)
	conf, err := config.LoadConfiguration(path, nil)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	_, report := solveConfig(t, conf)
	res := report.Result

	testutil.AssertNear(t, "amountA", res.AmountA, 32.87695, 0.0001)
	testutil.AssertNear(t, "totalVolume", res.TotalVolume, 48, 1e-9)
	testutil.AssertNear(t, "equalSplitPurity", report.EqualSplitPurity, 0.365, 1e-9)
	if res.Iterations != 13 {
		t.Errorf("expected 13 iterations, got %d", res.Iterations)
	}
	if report.Priced {
		t.Errorf("volume mode without prices must not be priced")
	}
}

// TestCLIAndAPIAgree posts the example configuration to the HTTP API and
// compares the answer with the configuration-driven solve.
func TestCLIAndAPIAgree(t *testing.T) {
	conf, err := config.LoadConfiguration(testConfigPath, nil)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	_, want := solveConfig(t, conf)

	body, err := json.Marshal(map[string]interface{}{
		"mode":             conf.Blend.Mode,
		"total":            conf.Blend.Total,
		"priceA":           conf.FluidA.Price,
		"priceB":           conf.FluidB.Price,
		"dilutionFraction": conf.FluidA.DilutionFraction,
		"targetPurity":     conf.Blend.TargetPurity,
		"tolerance":        conf.Blend.Tolerance,
		"maxIterations":    conf.Blend.MaxIterations,
		"fluidA":           conf.FluidA.Name,
		"fluidB":           conf.FluidB.Name,
		"currency":         conf.Output.Currency,
	})
	if err != nil {
		t.Fatalf("failed to encode request: %v", err)
	}

	serverCfg, err := server.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	srv := httptest.NewServer(server.NewHandler(zap.NewNop(), serverCfg, "integration"))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/blend", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/blend error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var got output.Report
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if got.Result != want.Result {
		t.Fatalf("API result %+v differs from local result %+v", got.Result, want.Result)
	}
	if got.Display != want.Display {
		t.Fatalf("API display %+v differs from local display %+v", got.Display, want.Display)
	}
}
