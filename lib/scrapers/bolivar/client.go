package bolivar

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/telemetry"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/timezone"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/bolivar")

const (
	defaultIndexUrl = "https://www.segurosbolivar.com/indemnizaciones-web/pages/index.xhtml"
	defaultLoginUrl = "https://registro.segurosbolivar.com/nidp/idff/sso"

	loginPagePath  = "/indemnizaciones-web/login.html"
	roleSelectPath = "/indemnizaciones-web/Ingreso"

	// the credential login sequence follows at most this many redirects
	// before giving up; hitting the cap is reported as its own failure
	// instead of whatever page the chain happened to stop on
	maxLoginRedirects = 3
	// after role selection the portal settles onto the landing page in
	// a single hop, and a longer chain means the login bounced somewhere
	// else. The flexible policy counts the initial request against the
	// cap, hence the 2.
	maxLandingRedirects = 2

	requestTimeout = time.Second * 30
)

// ClientOptions configures one portal session. Exactly one of
// CookieHeader or UseServerAuth must be supplied.
type ClientOptions struct {
	// pasted session cookie header; the supported and preferred mode
	CookieHeader string
	// login with Credentials instead of a pasted cookie
	UseServerAuth bool
	Credentials   Credentials

	// overrides for the portal endpoints and round-trip timeout,
	// used by tests
	IndexUrl string
	LoginUrl string
	Timeout  time.Duration
}

// Client is one authenticated read-only session against the claims
// portal. It owns its cookie jar and view state token; queries mutate
// both, so a Client must not be shared across concurrent queries. Run
// independent Clients for parallelism.
type Client struct {
	http     *resty.Client
	limiter  *rate.Limiter
	indexUrl *url.URL
	loginUrl *url.URL

	cookieMode    bool
	useServerAuth bool
	creds         Credentials

	viewState     viewState
	authenticated bool
	failed        bool
}

func NewClient(opts ClientOptions) (*Client, error) {
	cookieHeader := strings.TrimSpace(opts.CookieHeader)
	if cookieHeader == "" && !opts.UseServerAuth {
		return nil, fmt.Errorf(
			"%w: no session cookie supplied and server auth not requested",
			ErrConfiguration,
		)
	}

	rawIndex := opts.IndexUrl
	if rawIndex == "" {
		rawIndex = defaultIndexUrl
	}
	indexUrl, err := url.Parse(rawIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: bad index url: %v", ErrConfiguration, err)
	}
	rawLogin := opts.LoginUrl
	if rawLogin == "" {
		rawLogin = defaultLoginUrl
	}
	loginUrl, err := url.Parse(rawLogin)
	if err != nil {
		return nil, fmt.Errorf("%w: bad login url: %v", ErrConfiguration, err)
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0")
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = requestTimeout
	}
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/bolivar/http")

	if cookieHeader != "" {
		client.SetCookies(ParseCookieHeader(cookieHeader))
	}

	c := &Client{
		http:          client,
		limiter:       rate.NewLimiter(rate.Limit(2), 4),
		indexUrl:      indexUrl,
		loginUrl:      loginUrl,
		cookieMode:    cookieHeader != "",
		useServerAuth: opts.UseServerAuth,
		creds:         opts.Credentials,
	}
	c.setRedirectCap(maxLoginRedirects)
	return c, nil
}

// setRedirectCap swaps the client's redirect policy. The login chain
// and the landing fetch allow different chain lengths, and resty only
// takes redirect policies at the client level.
func (c *Client) setRedirectCap(hops int) {
	c.http.SetRedirectPolicy(
		resty.FlexibleRedirectPolicy(hops),
		resty.DomainCheckRedirectPolicy(
			c.indexUrl.Hostname(),
			c.loginUrl.Hostname(),
			"segurosbolivar.com",
			"www.segurosbolivar.com",
			"registro.segurosbolivar.com",
		),
	)
}

// EnsureAuthenticated is idempotent. In cookie mode the pasted cookie
// is trusted as-is and the view state is obtained lazily on the first
// page fetch; an invalid cookie only surfaces later as not-found
// results. Credential mode runs the full login sequence.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	if c.authenticated {
		return nil
	}
	if c.failed {
		return fmt.Errorf("%w: session previously failed to authenticate", ErrAuthentication)
	}

	if c.cookieMode {
		c.authenticated = true
		return nil
	}

	if !c.useServerAuth {
		return fmt.Errorf(
			"%w: no session cookie supplied and server auth not requested",
			ErrConfiguration,
		)
	}
	if c.creds.UserId == "" || c.creds.Password == "" {
		return fmt.Errorf(
			"%w: server auth requested but credentials are missing",
			ErrConfiguration,
		)
	}

	err := c.authenticate(ctx)
	if err != nil {
		c.failed = true
		return err
	}
	c.authenticated = true
	return nil
}

// authenticate performs the server-side login: credential POST, a
// capped redirect chain towards the portal, the role-selection POST,
// then the landing page fetch that yields the initial view state.
func (c *Client) authenticate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:authenticate")
	defer span.End()

	portalBase := *c.indexUrl
	portalBase.Path = ""
	portalBase.RawQuery = ""

	loginTarget := portalBase.String() + loginPagePath

	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}
	_, err = c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id":     "620",
			"sid":    "0",
			"option": "credential",
			"target": loginTarget,
		}).
		SetFormData(map[string]string{
			"Num_Documento": c.creds.UserId,
			"Ecom_User_ID":  c.creds.UserId,
			"Ecom_Password": c.creds.Password,
			"form":          "INGRESA",
		}).
		Post(c.loginUrl.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "credential post failed")
		return fmt.Errorf("%w: credential post: %v", ErrAuthentication, err)
	}

	// follow-your-nose hop towards the portal; the redirect policy
	// caps the chain, so exhausting it shows up as an error here
	// rather than as a half-logged-in session
	err = c.limiter.Wait(ctx)
	if err != nil {
		return err
	}
	_, err = c.http.R().
		SetContext(ctx).
		Get(loginTarget)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login redirect chain failed")
		return fmt.Errorf("%w: login redirect chain: %v", ErrAuthentication, err)
	}

	err = c.limiter.Wait(ctx)
	if err != nil {
		return err
	}
	_, err = c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"nov-ss-ff-silent":                  "",
			"mastercdnff-indemnizacion-web3310": "",
		}).
		SetFormData(map[string]string{
			"login":          c.creds.UserId,
			"rol":            c.roleName(),
			"nov-ss-ff-Npst": "mastercdnff-indemnizacion-web3310",
		}).
		Post(portalBase.String() + roleSelectPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "role selection failed")
		return fmt.Errorf("%w: role selection: %v", ErrAuthentication, err)
	}

	err = c.limiter.Wait(ctx)
	if err != nil {
		return err
	}
	c.setRedirectCap(maxLandingRedirects)
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.indexUrl.String())
	c.setRedirectCap(maxLoginRedirects)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "landing fetch failed")
		return fmt.Errorf("%w: landing fetch: %v", ErrAuthentication, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(res.Body())))
	if err != nil {
		return fmt.Errorf("%w: landing page unparseable: %v", ErrAuthentication, err)
	}
	value := doc.Find(`input[name="` + viewStateField + `"]`).AttrOr("value", "")
	if value == "" {
		span.SetStatus(codes.Error, "no view state after login")
		return fmt.Errorf("%w: no view state token on landing page", ErrAuthentication)
	}
	c.viewState.RefreshFrom(string(res.Body()))

	return nil
}

func (c *Client) roleName() string {
	if c.creds.Poliza != "" {
		return c.creds.Poliza
	}
	return "WSINMOB01"
}

// fetchIndex gets the landing page and refreshes the view state token
// from it. Every query starts here because the token is per-request.
func (c *Client) fetchIndex(ctx context.Context) (string, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return "", err
	}
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.indexUrl.String())
	if err != nil {
		return "", err
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("portal returned HTTP %d for landing page", res.StatusCode())
	}

	body := string(res.Body())
	c.viewState.RefreshFrom(body)
	return body, nil
}

// QueryRadicado looks up the current status of one claim. Empty input
// short-circuits to a not-found result without touching the portal.
func (c *Client) QueryRadicado(ctx context.Context, radicado string) (Result, error) {
	ctx, span := tracer.Start(ctx, "client:QueryRadicado")
	defer span.End()

	trimmed := strings.TrimSpace(radicado)
	consultedAt := timezone.Now()
	if trimmed == "" {
		return Result{
			Radicado:          trimmed,
			OK:                true,
			EstadoNormalizado: StatusNotFound,
			ConsultedAt:       consultedAt,
		}, nil
	}
	span.SetAttributes(attribute.String("radicado", trimmed))

	err := c.EnsureAuthenticated(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "authentication failed")
		return Result{}, err
	}

	indexHtml, err := c.fetchIndex(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "landing fetch failed")
		return Result{}, err
	}
	if c.viewState.Value() == "" {
		span.SetStatus(codes.Error, "no view state on landing page")
		return Result{}, fmt.Errorf("%w: no view state token on landing page", ErrProtocol)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(indexHtml))
	if err != nil {
		return Result{}, fmt.Errorf("%w: landing page unparseable: %v", ErrProtocol, err)
	}
	form := resolveSearchForm(doc, c.indexUrl)
	if form == nil {
		span.SetStatus(codes.Error, "no search form on landing page")
		return Result{}, fmt.Errorf("%w: no search form on landing page", ErrProtocol)
	}

	err = c.limiter.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	res, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form.payload(trimmed, c.viewState.Value())).
		SetHeader("Referer", c.indexUrl.String()).
		Post(form.Action)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search submit failed")
		return Result{}, err
	}
	if !res.IsSuccess() {
		return Result{}, fmt.Errorf("portal returned HTTP %d for radicado query", res.StatusCode())
	}

	body := string(res.Body())
	c.viewState.RefreshFrom(body)

	estadoRaw, asegurado, tier := ExtractClaimInfo(body)
	span.SetAttributes(attribute.String("extraction_tier", string(tier)))

	if estadoRaw == "" {
		return Result{
			Radicado:          trimmed,
			OK:                true,
			EstadoNormalizado: StatusNotFound,
			Asegurado:         asegurado,
			ConsultedAt:       consultedAt,
		}, nil
	}

	return Result{
		Radicado:          trimmed,
		OK:                true,
		EstadoRaw:         estadoRaw,
		EstadoNormalizado: NormalizeStatus(estadoRaw),
		Asegurado:         asegurado,
		ConsultedAt:       consultedAt,
	}, nil
}
