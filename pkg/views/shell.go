package views

import (
	"io"

	"github.com/iot-manager/console/pkg/routepath"
	"github.com/iot-manager/console/pkg/routetable"
	"golang.org/x/net/html"
)

// ShellData is the input to Shell.
type ShellData struct {
	// Title is the document title.
	Title string

	// Base is the mount prefix the console is served under.
	Base string

	// NavURL is the live navigation endpoint. Empty disables the client
	// script, leaving plain links that reload the page.
	NavURL string

	// Entries are listed in the navigation bar, in order.
	Entries []routetable.Entry

	// Current is the mounted entry; its link is marked active. Zero when
	// nothing matched.
	Current routetable.Entry

	// Body is the rendered markup of the mounted view.
	Body string
}

// Shell renders the full HTML document around a mounted view.
func Shell(w io.Writer, d ShellData) error {
	nav := el("nav", nil)
	for _, e := range d.Entries {
		la := attrs(
			a("href", routepath.JoinBase(d.Base, e.Path)),
			a("data-link", "true"),
			a("data-path", e.Path),
		)
		if e.Path == d.Current.Path && d.Current.Name != "" {
			la = append(la, a("class", "active"), a("aria-current", "page"))
		}
		nav.AppendChild(el("a", la, text(e.Name)))
	}

	body := el("body", attrs(a("data-base", routepath.NormalizeBase(d.Base))),
		nav,
		el("main", attrs(a("id", "app")), raw(d.Body)),
	)
	if d.NavURL != "" {
		body.AppendChild(el("script", attrs(a("data-nav", d.NavURL)), text(clientScript)))
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(el("html", attrs(a("lang", "en")),
		el("head", nil,
			el("meta", attrs(a("charset", "utf-8"))),
			el("title", nil, text(d.Title)),
		),
		body,
	))
	return html.Render(w, doc)
}

// clientScript intercepts data-link clicks and browser history traversals,
// sends them over the live navigation socket and swaps #app with the reply.
// Traversals carry how many entries the browser moved.
// Replies to anything but the latest request are ignored.
const clientScript = `(function () {
  var s = document.currentScript;
  var app = document.getElementById("app");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + s.dataset.nav +
    "?path=" + encodeURIComponent(location.pathname));
  var seq = 0, idx = 0;
  history.replaceState({ i: 0 }, "");

  function send(msg) {
    if (ws.readyState !== 1) return false;
    msg.seq = ++seq;
    ws.send(JSON.stringify(msg));
    return true;
  }

  function markActive(path) {
    document.querySelectorAll("nav a[data-link]").forEach(function (l) {
      l.classList.toggle("active", l.dataset.path === path);
    });
  }

  document.addEventListener("click", function (e) {
    var l = e.target.closest("a[data-link]");
    if (!l) return;
    if (send({ path: l.dataset.path })) e.preventDefault();
  });

  window.addEventListener("popstate", function (e) {
    var i = e.state ? e.state.i : 0;
    var delta = i - idx;
    idx = i;
    if (delta === 0) return;
    if (!send({ op: "go", delta: delta })) location.reload();
  });

  ws.onmessage = function (ev) {
    var m = JSON.parse(ev.data);
    if (m.seq !== seq) return;
    if (m.error === "no_history" || m.error === "internal") {
      location.reload();
      return;
    }
    if (m.error) {
      app.innerHTML = m.html || "";
      markActive("");
      return;
    }
    app.innerHTML = m.html;
    markActive(m.path);
    if (m.op !== "navigate") return;
    if (m.replace) {
      history.replaceState({ i: idx }, "", m.href);
    } else {
      idx++;
      history.pushState({ i: idx }, "", m.href);
    }
  };
})();`
