package render

import (
	"fmt"
	"html/template"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payshot/internal/payout"
)

// neighborCount is how many synthetic tickets accompany the operator's one.
const neighborCount = 9

type neighborRow struct {
	Number string
	Amount string
}

type pageData struct {
	IsError        bool
	CountryName    string
	Currency       string
	CurrencySymbol string
	AccountNumber  string
	Amount         string
	OtherAccounts  []neighborRow
	TotalAccounts  int
	WaitingCount   int
	TotalAmount    string
	CurrentDate    string
}

// BuildHTML renders the payout page for a request. The clock is passed in
// so tests can pin the displayed date; it is converted to the country's
// timezone before formatting.
func BuildHTML(req payout.RenderRequest, now time.Time) (string, error) {
	amount, _ := req.Amount.Float64()

	// Synthetic neighbors: amounts between 30% and 200% of the entered
	// amount, accounts within ±100000 of the operator's numeric account.
	minAmount := amount * 0.3
	if minAmount < 10 {
		minAmount = 10
	}
	maxAmount := amount * 2.0
	if maxAmount < minAmount {
		maxAmount = minAmount
	}

	base, err := parseAccountNumber(req.Account)
	if err != nil {
		base = int64(rand.Intn(900000) + 100000)
	}
	minID := base - 100000
	if minID < 0 {
		minID = 0
	}
	maxID := base + 100000

	neighbors := make([]neighborRow, 0, neighborCount)
	total := req.Amount
	for i := 0; i < neighborCount; i++ {
		v := minAmount + rand.Float64()*(maxAmount-minAmount)
		d := decimal.NewFromFloat(v).Round(2)
		total = total.Add(d)
		neighbors = append(neighbors, neighborRow{
			Number: fmt.Sprintf("%d", minID+rand.Int63n(maxID-minID+1)),
			Amount: payout.FormatAmount(d),
		})
	}

	data := pageData{
		IsError:        req.Kind.IsError(),
		CountryName:    req.Country.Name,
		Currency:       req.Country.Currency,
		CurrencySymbol: req.Country.CurrencySymbol,
		AccountNumber:  req.Account,
		Amount:         payout.FormatAmount(req.Amount),
		OtherAccounts:  neighbors,
		TotalAccounts:  neighborCount + 1,
		WaitingCount:   1,
		TotalAmount:    payout.FormatAmount(total),
		CurrentDate:    now.In(req.Country.Location()).Format("02.01.2006 (15:04)"),
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return b.String(), nil
}

func parseAccountNumber(account string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(strings.TrimSpace(account), "%d", &n)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("account is not numeric")
	}
	return n, nil
}

var pageTemplate = template.Must(template.New("payout").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>1xBet - Lista de Cuentas</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
    background: #0a0e27; color: #fff; height: 800px; overflow: hidden; line-height: 1.5;
}
.header {
    background: #1a1f3a; border-bottom: 2px solid #2a2f4a; padding: 12px 20px;
    display: flex; align-items: center; justify-content: space-between;
    position: sticky; top: 0; z-index: 1000;
}
.logo-section { display: flex; align-items: center; gap: 0; }
.logo {
    display: inline-flex; align-items: baseline; text-decoration: none;
    font-weight: 900; font-size: 30px; line-height: 1; letter-spacing: -0.5px;
    font-family: 'Arial Black', 'Arial Bold', Arial, sans-serif;
}
.logo-1x { color: #0d47a1; display: inline-block; position: relative; transform: skewX(-6deg); }
.logo-bet { color: #1976d2; margin-left: 2px; font-weight: 900; }
.nav-menu { display: flex; gap: 8px; list-style: none; flex: 1; justify-content: center; }
.nav-item {
    color: #b8bcc8; text-decoration: none; font-size: 13px; padding: 8px 14px;
    border-radius: 4px; position: relative;
}
.container {
    display: flex; max-width: 1600px; margin: 0 auto; padding: 20px; gap: 20px;
    height: calc(100vh - 60px); overflow: hidden;
}
.sidebar-left { width: 240px; flex-shrink: 0; }
.sidebar-block {
    background: #14182e; border: 1px solid #2a2f4a; border-radius: 6px;
    margin-bottom: 12px; padding: 12px;
}
.sidebar-title {
    font-size: 12px; color: #8a8f9f; margin-bottom: 8px;
    text-transform: uppercase; font-weight: 600;
}
.sidebar-link {
    display: flex; align-items: center; gap: 8px; color: #b8bcc8;
    text-decoration: none; padding: 8px; border-radius: 4px; font-size: 13px;
}
.main-content { flex: 1; min-width: 0; overflow-y: auto; max-height: 100%; }
.content-block {
    background: #14182e; border: 1px solid #2a2f4a; border-radius: 6px;
    padding: 20px; margin-bottom: 20px;
}
.page-title { font-size: 24px; margin-bottom: 8px; color: #fff; font-weight: 700; }
.page-subtitle { font-size: 14px; color: #8a8f9f; margin-bottom: 20px; }
.coupon-header {
    display: flex; justify-content: space-between; align-items: center;
    margin-bottom: 16px; padding-bottom: 12px; border-bottom: 1px solid #2a2f4a;
}
.coupon-tabs { display: flex; gap: 4px; }
.coupon-tab {
    padding: 8px 16px; background: transparent; border: none; color: #8a8f9f;
    font-size: 13px; cursor: pointer; border-radius: 4px;
}
.coupon-tab.active { background: #1a1f3a; color: #00b26b; font-weight: 600; }
.coupon-item {
    background: #1a1f3a; border: 1px solid #2a2f4a; border-radius: 6px;
    padding: 16px; margin-bottom: 12px;
}
.coupon-item.priority {
    border-color: #00b26b;
    background: linear-gradient(135deg, rgba(0, 178, 107, 0.1) 0%, #1a1f3a 100%);
}
.coupon-number { font-size: 11px; color: #8a8f9f; margin-bottom: 8px; }
.coupon-date { font-size: 11px; color: #8a8f9f; margin-bottom: 12px; }
.coupon-type {
    display: inline-block; background: rgba(0, 178, 107, 0.2); color: #00b26b;
    padding: 4px 8px; border-radius: 4px; font-size: 11px; font-weight: 600;
    margin-bottom: 12px;
}
.coupon-bet-info {
    display: flex; justify-content: space-between; align-items: center; margin-bottom: 12px;
}
.bet-amount { font-size: 16px; font-weight: 700; color: #fff; }
.bet-winnings { font-size: 14px; color: #00b26b; font-weight: 600; }
.bet-details { background: #0f1325; padding: 12px; border-radius: 4px; margin-bottom: 8px; }
.bet-sport { font-size: 11px; color: #8a8f9f; margin-bottom: 4px; }
.bet-match { font-size: 13px; color: #fff; font-weight: 600; margin-bottom: 6px; }
.bet-selection { font-size: 12px; color: #b8bcc8; margin-bottom: 4px; }
.bet-status {
    display: inline-block; padding: 4px 8px; border-radius: 4px;
    font-size: 11px; font-weight: 600; margin-top: 8px;
}
.bet-status.waiting { background: rgba(255, 193, 7, 0.2); color: #ffc107; }
.bet-status.processing { background: rgba(33, 150, 243, 0.2); color: #2196f3; }
.coupon-actions { display: flex; gap: 8px; margin-top: 12px; }
.action-btn {
    flex: 1; padding: 10px; border: none; border-radius: 4px;
    font-size: 12px; font-weight: 600; cursor: pointer;
}
.action-btn.primary { background: #00b26b; color: #fff; }
.action-btn.secondary { background: #1a1f3a; color: #b8bcc8; border: 1px solid #2a2f4a; }
.sidebar-right { width: 280px; flex-shrink: 0; }
.stats-box {
    background: #14182e; border: 1px solid #2a2f4a; border-radius: 6px;
    padding: 16px; margin-bottom: 12px;
}
.stats-title {
    font-size: 12px; color: #8a8f9f; margin-bottom: 12px;
    text-transform: uppercase; font-weight: 600;
}
.stat-row {
    display: flex; justify-content: space-between; padding: 8px 0;
    border-bottom: 1px solid #2a2f4a;
}
.stat-row:last-child { border-bottom: none; }
.stat-label { font-size: 13px; color: #b8bcc8; }
.stat-value { font-size: 13px; color: #fff; font-weight: 600; }
.stat-value.highlight { color: #00b26b; }
.error-status { background: rgba(244, 67, 54, 0.2); color: #f44336; }
.error-message {
    background: rgba(244, 67, 54, 0.1); border: 1px solid #f44336; border-radius: 6px;
    padding: 16px; margin-bottom: 16px; color: #f44336; font-weight: 600; font-size: 14px;
}
</style>
</head>
<body>
<div class="header">
    <div class="logo-section">
        <a href="#" class="logo"><span class="logo-1x">1X</span><span class="logo-bet">BET</span></a>
    </div>
    <ul class="nav-menu">
        <li><a href="#" class="nav-item">TOP-EVENTS</a></li>
        <li><a href="#" class="nav-item">DEPORTES</a></li>
        <li><a href="#" class="nav-item">DIRECTO</a></li>
        <li><a href="#" class="nav-item">1XGAMES</a></li>
        <li><a href="#" class="nav-item">CASINO</a></li>
        <li><a href="#" class="nav-item">ESPORTS</a></li>
        <li><a href="#" class="nav-item">PROMO</a></li>
        <li><a href="#" class="nav-item">MÁS</a></li>
    </ul>
</div>
<div class="container">
    <div class="sidebar-left">
        <div class="sidebar-block">
            <div class="sidebar-title">Navegación</div>
            <a href="#" class="sidebar-link">⭐ Partidos favoritos</a>
            <a href="#" class="sidebar-link">👍 Recomendados</a>
            <a href="#" class="sidebar-link">🏆 Campeonatos destacados</a>
            <a href="#" class="sidebar-link">🎮 Mejores juegos</a>
        </div>
        <div class="sidebar-block">
            <div class="sidebar-title">Deportes</div>
            <a href="#" class="sidebar-link">⚽ Fútbol (32)</a>
            <a href="#" class="sidebar-link">🏀 Baloncesto (28)</a>
            <a href="#" class="sidebar-link">🏐 Voleibol (23)</a>
            <a href="#" class="sidebar-link">🎾 Tenis (12)</a>
        </div>
    </div>
    <div class="main-content">
        <div class="content-block">
            {{if .IsError}}
            <h1 class="page-title">Error en Envío de Ganancias</h1>
            <p class="page-subtitle">Error al procesar el envío de ganancias - {{.CountryName}} ({{.Currency}})</p>
            <div class="error-message">❌ Error: No se pudo enviar el pago. Por favor, intente nuevamente o contacte con el soporte.</div>
            {{else}}
            <h1 class="page-title">Lista de Cuentas en Espera</h1>
            <p class="page-subtitle">Cuentas pendientes de envío de ganancias - {{.CountryName}} ({{.Currency}})</p>
            {{end}}
            <div class="coupon-header">
                <div class="coupon-tabs">
                    <button class="coupon-tab active">Boleto de apuestas</button>
                    <button class="coupon-tab">Mis apuestas</button>
                </div>
            </div>
            <div class="coupon-item priority">
                <div class="coupon-number">Boleto № {{.AccountNumber}}</div>
                <div class="coupon-date">{{.CurrentDate}}</div>
                {{if .IsError}}
                <div class="coupon-type" style="background: rgba(244, 67, 54, 0.2); color: #f44336;">ERROR</div>
                {{else}}
                <div class="coupon-type">EN ESPERA</div>
                {{end}}
                <div class="coupon-bet-info">
                    <div class="bet-amount">{{.CurrencySymbol}} {{.Amount}}</div>
                    <div class="bet-winnings">Ganancia: {{.CurrencySymbol}} {{.Amount}}</div>
                </div>
                <div class="bet-details">
                    <div class="bet-sport">Cuenta de Pago</div>
                    <div class="bet-match">{{.AccountNumber}}</div>
                    <div class="bet-selection">Monto: {{.CurrencySymbol}} {{.Amount}}</div>
                    {{if .IsError}}
                    <div class="bet-status error-status">ERROR AL ENVIAR</div>
                    {{else}}
                    <div class="bet-status waiting">EN ESPERA DE ENVÍO</div>
                    {{end}}
                </div>
                <div class="coupon-actions">
                    {{if .IsError}}
                    <button class="action-btn primary" style="background: #f44336;">Reintentar Pago</button>
                    {{else}}
                    <button class="action-btn primary">Procesar Pago</button>
                    {{end}}
                    <button class="action-btn secondary">Detalles</button>
                </div>
            </div>
            {{range .OtherAccounts}}
            <div class="coupon-item">
                <div class="coupon-number">Boleto № {{.Number}}</div>
                <div class="coupon-date">{{$.CurrentDate}}</div>
                <div class="coupon-type">PROCESANDO</div>
                <div class="coupon-bet-info">
                    <div class="bet-amount">{{$.CurrencySymbol}} {{.Amount}}</div>
                    <div class="bet-winnings">Ganancia: {{$.CurrencySymbol}} {{.Amount}}</div>
                </div>
                <div class="bet-details">
                    <div class="bet-sport">Cuenta de Pago</div>
                    <div class="bet-match">{{.Number}}</div>
                    <div class="bet-selection">Monto: {{$.CurrencySymbol}} {{.Amount}}</div>
                    <div class="bet-status processing">EN PROCESO</div>
                </div>
                <div class="coupon-actions">
                    <button class="action-btn secondary">Ver Detalles</button>
                </div>
            </div>
            {{end}}
        </div>
    </div>
    <div class="sidebar-right">
        <div class="stats-box">
            <div class="stats-title">Estadísticas</div>
            <div class="stat-row">
                <span class="stat-label">Total Cuentas</span>
                <span class="stat-value">{{.TotalAccounts}}</span>
            </div>
            <div class="stat-row">
                <span class="stat-label">En Espera</span>
                <span class="stat-value highlight">{{.WaitingCount}}</span>
            </div>
            <div class="stat-row">
                <span class="stat-label">Monto Total</span>
                <span class="stat-value highlight">{{.CurrencySymbol}} {{.TotalAmount}}</span>
            </div>
        </div>
        <div class="stats-box">
            <div class="stats-title">Información</div>
            <div class="stat-row">
                <span class="stat-label">País</span>
                <span class="stat-value">{{.CountryName}}</span>
            </div>
            <div class="stat-row">
                <span class="stat-label">Moneda</span>
                <span class="stat-value">{{.Currency}}</span>
            </div>
        </div>
    </div>
</div>
</body>
</html>
`
