package shell

import (
	"time"
)

const (
	defaultScanTarget = "192.168.1.X"
	defaultSqlmapURL  = "http://testphp.vulnweb.com/artists.php?artist=1"
	clockFormat       = "15:04:05"
)

func registerTools(r *Registry) {
	r.MustRegister(Command{
		Name:     "nmap",
		Synopsis: "nmap [ip]",
		Summary:  "Port Scanner",
		Category: CategoryNetworking,
		Kind:     KindStaged,
		Staged:   runTool,
	})
	r.MustRegister(Command{
		Name:     "scan",
		Synopsis: "scan [ip]",
		Summary:  "Vuln Scanner",
		Category: CategoryNetworking,
		Kind:     KindStaged,
		Staged: func(c *Call) Simulation {
			target := c.Arg(0)
			if target == "" {
				target = defaultScanTarget
			}
			return NewScan(target, Vulnerabilities)
		},
	})
	r.MustRegister(Command{
		Name:     "sqlmap",
		Synopsis: "sqlmap [url]",
		Summary:  "SQL Injection Sim",
		Category: CategoryPentesting,
		Kind:     KindStaged,
		Staged:   runSqlmap,
	})
	r.MustRegister(Command{
		Name:     "hydra",
		Synopsis: "hydra [usr] [targ]",
		Summary:  "Brute Force Sim",
		Category: CategoryPentesting,
		Kind:     KindStaged,
		Staged:   runTool,
	})
	r.MustRegister(Command{
		Name:     "john",
		Synopsis: "john [hashfile]",
		Summary:  "Password Cracker Sim",
		Category: CategoryPentesting,
		Kind:     KindStaged,
		Staged:   runTool,
	})
	r.MustRegister(Command{
		Name:     "msfconsole",
		Synopsis: "msfconsole",
		Summary:  "Metasploit Sim",
		Category: CategoryPentesting,
		Kind:     KindStaged,
		Staged:   runMsfconsole,
	})
	r.MustRegister(Command{
		Name:     "setoolkit",
		Synopsis: "setoolkit",
		Summary:  "Social Eng. Tool Sim",
		Category: CategoryPentesting,
		Kind:     KindStaged,
		Staged: func(*Call) Simulation {
			return NewStream(Every(0, 0, setoolkitMenu...))
		},
	})
}

// runTool serves nmap, hydra and john, which share one scripted run.
func runTool(c *Call) Simulation {
	target := c.Arg(0)
	if target == "" {
		target = "localhost"
	}
	s := NewStream(Every(500*time.Millisecond, 500*time.Millisecond,
		"Initiating parallel threads...",
		"Target "+target+" resolved to 127.0.0.1",
		"Sending SYN packets...",
		"Port 22 (SSH) open",
		"Port 80 (HTTP) open",
		"Service scan complete.",
	))
	s.Title = "Starting " + c.Name + " at " + c.Session.Now().Format(clockFormat) + "..."
	s.Footer = "INFO: " + toolSummary(c.Name)
	return s
}

func runSqlmap(c *Call) Simulation {
	url := c.Arg(0)
	if url == "-u" {
		url = c.Arg(1)
	}
	if url == "" {
		url = defaultSqlmapURL
	}
	s := NewStream(Every(0, 800*time.Millisecond,
		"[*] starting @ "+c.Session.Now().Format(clockFormat),
		"[*] checking connection to the target URL",
		"[*] testing if the target URL content is stable",
		"[*] testing for SQL injection on GET parameter 'id'",
		"[+] GET parameter 'id' is 'MySQL > 5.0.12' time-based blind injectable",
		"[*] fetching current database",
		"[*] retrieved: 'legacy_users'",
		"[*] fetching tables for database: 'legacy_users'",
		"[+] found 2 tables: 'admin', 'customers'",
		"[*] dumping table 'admin'...",
		"[+] admin | $2a$10$Xj... | superuser",
		"[*] fetched 1 entry",
	))
	s.Title = "___ sqlmap/1.5.8 ___"
	s.Footer = "[*] target: " + url
	s.Final = "VULNERABILITY CONFIRMED: SQL Injection"
	return s
}

func runMsfconsole(*Call) Simulation {
	lines := append([]string{msfBanner, ""}, msfSession...)
	s := NewStream(Every(2*time.Second, 0, lines...))
	s.Placeholder = "Starting the Metasploit Framework console..."
	return s
}
