package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"dnevnik-sdk/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pquerna/otp/totp"
	"go.opentelemetry.io/otel/codes"
)

const (
	loginPageURL    = "https://login.mos.ru/sps/login/methods/password"
	profileCheckURL = "https://dnevnik.mos.ru/mobile/api/profile"
	diaryOriginURL  = "https://dnevnik.mos.ru"

	defaultLoginTimeout = time.Second * 90
)

type InteractiveOptions struct {
	Login    string
	Password string
	// optional totp seed; without it a two-factor challenge fails
	// with ErrTotpRequired
	TotpSecret string
	// upper bound on the whole login flow, defaults to 90 seconds
	Timeout time.Duration
}

// InteractiveAuthenticator drives the portal's oauth login form over
// plain HTTP: load the form, submit credentials, walk the redirect
// chain until the diary origin sets its session cookies.
type InteractiveAuthenticator struct {
	opts InteractiveOptions

	http *resty.Client
	jar  *cookiejar.Jar

	studentID string
	token     string
}

var _ Authenticator = (*InteractiveAuthenticator)(nil)

func NewInteractiveAuthenticator(opts InteractiveOptions) *InteractiveAuthenticator {
	return &InteractiveAuthenticator{opts: opts}
}

func (a *InteractiveAuthenticator) Init(ctx context.Context) error {
	if a.http != nil {
		return nil
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	client := resty.New()
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "auth/interactive/http")

	a.http = client
	a.jar = jar
	return nil
}

func (a *InteractiveAuthenticator) Authenticate(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "auth:Authenticate")
	defer span.End()

	if a.http == nil {
		err := a.Init(ctx)
		if err != nil {
			return false, err
		}
	}
	a.studentID = ""
	a.token = ""

	timeout := a.opts.Timeout
	if timeout <= 0 {
		timeout = defaultLoginTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := a.processLogin(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		span.SetStatus(codes.Error, "login timed out")
		return false, ErrLoginTimeout
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return false, err
	}

	return a.studentID != "" && a.token != "", nil
}

func (a *InteractiveAuthenticator) StudentID(ctx context.Context) (string, error) {
	return a.studentID, nil
}

func (a *InteractiveAuthenticator) Token(ctx context.Context) (string, error) {
	return a.token, nil
}

func (a *InteractiveAuthenticator) Close() error {
	a.http = nil
	a.jar = nil
	return nil
}

func (a *InteractiveAuthenticator) Save(path string) error {
	return saveCurrent(a, path)
}

func (a *InteractiveAuthenticator) processLogin(ctx context.Context) error {
	res, err := a.http.R().
		SetContext(ctx).
		Get(loginPageURL)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return err
	}

	action, fields := formDetails(doc, "form")
	if action == "" {
		return fmt.Errorf("could not find login form")
	}
	fields["login"] = a.opts.Login
	fields["password"] = a.opts.Password

	res, err = a.http.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(resolveRef(res.RawResponse.Request.URL, action))
	if err != nil {
		return err
	}
	doc, err = goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return err
	}

	// the wrong-credentials page renders the error inside a blockquote
	// on the password method block
	if doc.Find("#pswdMethod-c blockquote p").Length() > 0 {
		return ErrIncorrectLoginPassword
	}

	if doc.Find("input#otp").Length() > 0 {
		doc, err = a.submitOtp(ctx, res.RawResponse.Request.URL, doc)
		if err != nil {
			return err
		}
	}

	return a.waitForSession(ctx)
}

// submitOtp handles the two-factor branch: generate a code from the
// configured seed and post it to the challenge form.
func (a *InteractiveAuthenticator) submitOtp(ctx context.Context, pageURL *url.URL, doc *goquery.Document) (*goquery.Document, error) {
	if a.opts.TotpSecret == "" {
		return nil, ErrTotpRequired
	}

	code, err := totp.GenerateCode(a.opts.TotpSecret, time.Now())
	if err != nil {
		return nil, err
	}

	action, fields := formDetails(doc, "form")
	if action == "" {
		return nil, fmt.Errorf("could not find otp form")
	}
	fields["otp"] = code

	res, err := a.http.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(resolveRef(pageURL, action))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// waitForSession polls the diary profile endpoint until the session
// cookies show up in the jar or the login deadline passes.
func (a *InteractiveAuthenticator) waitForSession(ctx context.Context) error {
	ticker := time.NewTicker(time.Second * 2)
	defer ticker.Stop()

	for {
		_, err := a.http.R().
			SetContext(ctx).
			Get(profileCheckURL)
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		id, token := a.sessionCookies()
		if id != "" && token != "" {
			a.studentID = id
			a.token = token
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *InteractiveAuthenticator) sessionCookies() (studentID, token string) {
	origin, err := url.Parse(diaryOriginURL)
	if err != nil {
		return "", ""
	}
	for _, cookie := range a.jar.Cookies(origin) {
		switch cookie.Name {
		case "profile_id":
			studentID = cookie.Value
		case "auth_token":
			token = cookie.Value
		}
	}
	return studentID, token
}

// formDetails extracts a form's action target and its pre-filled
// input values (hidden csrf fields and the like).
func formDetails(doc *goquery.Document, selector string) (string, map[string]string) {
	form := doc.Find(selector).First()
	if form.Length() == 0 {
		return "", nil
	}

	fields := map[string]string{}
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if name == "" {
			return
		}
		fields[name] = input.AttrOr("value", "")
	})
	return form.AttrOr("action", ""), fields
}

func resolveRef(base *url.URL, ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if base == nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
