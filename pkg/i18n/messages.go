package i18n

// defaultTranslations contains all default translations
var defaultTranslations = Translations{
	English: Translation{
		// Service
		"service.name":        "BrazucaPhish",
		"service.description": "Phishing awareness campaigns",

		// Navigation
		"nav.login":     "Login",
		"nav.register":  "Register",
		"nav.chatbot":   "Assistant",
		"nav.dashboard": "Dashboard",

		// Register
		"register.title":               "Register",
		"register.heading":             "Create your account",
		"register.given_name":          "Name",
		"register.email":               "Email",
		"register.password":            "Password",
		"register.confirm_password":    "Confirm password",
		"register.submit":              "Register",
		"register.error.mismatch":      "Passwords do not match.",
		"register.error.failed":        "Registration failed.",
		"register.success.redirect":    "Registration successful! Redirecting...",
		"register.success.check_email": "Registration successful! Check your email to confirm your account.",
		"register.have_account":        "Already have an account?",

		// Confirm
		"confirm.title":        "Confirm account",
		"confirm.heading":      "Confirm your account",
		"confirm.email":        "Email",
		"confirm.code":         "Confirmation code",
		"confirm.submit":       "Confirm",
		"confirm.error.failed": "Confirmation failed.",
		"confirm.success":      "Account confirmed! Redirecting...",

		// Login
		"login.title":         "Login",
		"login.heading":       "Sign in",
		"login.email":         "Email",
		"login.password":      "Password",
		"login.submit":        "Sign in",
		"login.error.invalid": "Invalid email or password.",
		"login.no_account":    "No account yet?",

		// Chat
		"chat.title":         "Assistant",
		"chat.heading":       "Security assistant",
		"chat.placeholder":   "Type your question...",
		"chat.send":          "Send",
		"chat.you":           "You",
		"chat.bot":           "Bot",
		"chat.thinking":      "Thinking...",
		"chat.quit_hint":     "enter: send • esc: quit",
		"chat.error.unknown": "An unknown error occurred.",

		// Dashboard
		"dashboard.title":                "Dashboard",
		"dashboard.card.total_campaigns": "Campaigns",
		"dashboard.card.total_clicks":    "Total clicks",
		"dashboard.card.unique_victims":  "Unique victims",
		"dashboard.card.success_rate":    "Success rate",
		"dashboard.table.name":           "Name",
		"dashboard.table.created":        "Created",
		"dashboard.table.clicks":         "Clicks",
		"dashboard.table.actions":        "Actions",
		"dashboard.table.view":           "View",
		"dashboard.table.export":         "Export",
		"dashboard.table.empty":          "No campaigns",
		"dashboard.new.heading":          "New campaign",
		"dashboard.new.name":             "Campaign name",
		"dashboard.new.description":      "Description",
		"dashboard.new.target_url":       "Target URL",
		"dashboard.new.emails":           "Target emails (one per line, max. 100)",
		"dashboard.new.submit":           "Generate links",
		"dashboard.links.heading":        "Generated links",
		"dashboard.links.campaign_id":    "Campaign %s",
		"dashboard.links.expires":        "Links expire at %s",
		"dashboard.links.copy_all":       "Copy all",
		"dashboard.links.copied":         "Links copied to clipboard.",
		"dashboard.links.close":          "Close",
		"dashboard.detail.total_clicks":  "Total clicks",
		"dashboard.detail.unique_users":  "Unique users",
		"dashboard.detail.unique_ips":    "Unique IPs",
		"dashboard.detail.period":        "Period",
		"dashboard.detail.export":        "Export CSV",
		"dashboard.error.no_emails":      "Please enter at least one email.",
		"dashboard.error.no_selection":   "No campaign selected.",
		"dashboard.error.unknown":        "Request failed.",

		// Errors
		"error.rate_limited": "Too many requests. Please wait a moment and try again.",
		"error.in_progress":  "A request is already in progress.",
		"error.not_found":    "Page not found",
		"error.internal":     "Internal Server Error",
		"error.bad_request":  "Invalid request.",
		"error.home":         "Back to sign in",

		// Terminal
		"cli.export.saved": "Exported to %s",

		// Link digest mail
		"mail.digest.subject":  "Phishing links for %s",
		"mail.digest.greeting": "Hello",
		"mail.digest.intro":    "The campaign %s generated %d links:",
		"mail.digest.expires":  "The links expire at %s.",
		"mail.digest.outro":    "This message was sent automatically by the BrazucaPhish console.",
		"mail.digest.untitled": "an untitled campaign",
		"mail.digest.button":   "Open dashboard",
	},

	Portuguese: Translation{
		// Service
		"service.name":        "BrazucaPhish",
		"service.description": "Campanhas de conscientização sobre phishing",

		// Navigation
		"nav.login":     "Entrar",
		"nav.register":  "Cadastrar",
		"nav.chatbot":   "Assistente",
		"nav.dashboard": "Painel",

		// Register
		"register.title":               "Cadastro",
		"register.heading":             "Crie sua conta",
		"register.given_name":          "Nome",
		"register.email":               "E-mail",
		"register.password":            "Senha",
		"register.confirm_password":    "Confirme a senha",
		"register.submit":              "Cadastrar",
		"register.error.mismatch":      "As senhas não coincidem. Por favor, tente novamente.",
		"register.error.failed":        "Falha ao cadastrar.",
		"register.success.redirect":    "Cadastro realizado com sucesso! Redirecionando...",
		"register.success.check_email": "Cadastro realizado com sucesso! Verifique seu e-mail para confirmar a conta.",
		"register.have_account":        "Já tem uma conta?",

		// Confirm
		"confirm.title":        "Confirmar conta",
		"confirm.heading":      "Confirme sua conta",
		"confirm.email":        "E-mail",
		"confirm.code":         "Código de confirmação",
		"confirm.submit":       "Confirmar",
		"confirm.error.failed": "Falha na confirmação.",
		"confirm.success":      "Conta confirmada! Redirecionando...",

		// Login
		"login.title":         "Entrar",
		"login.heading":       "Acesse sua conta",
		"login.email":         "E-mail",
		"login.password":      "Senha",
		"login.submit":        "Entrar",
		"login.error.invalid": "Email ou senha inválidos.",
		"login.no_account":    "Ainda não tem conta?",

		// Chat
		"chat.title":         "Assistente",
		"chat.heading":       "Assistente de segurança",
		"chat.placeholder":   "Digite sua pergunta...",
		"chat.send":          "Enviar",
		"chat.you":           "Você",
		"chat.bot":           "Bot",
		"chat.thinking":      "Pensando...",
		"chat.quit_hint":     "enter: enviar • esc: sair",
		"chat.error.unknown": "Ocorreu um erro desconhecido.",

		// Dashboard
		"dashboard.title":                "Painel",
		"dashboard.card.total_campaigns": "Campanhas",
		"dashboard.card.total_clicks":    "Total de cliques",
		"dashboard.card.unique_victims":  "Vítimas únicas",
		"dashboard.card.success_rate":    "Taxa de sucesso",
		"dashboard.table.name":           "Nome",
		"dashboard.table.created":        "Criada em",
		"dashboard.table.clicks":         "Cliques",
		"dashboard.table.actions":        "Ações",
		"dashboard.table.view":           "Ver",
		"dashboard.table.export":         "Exportar",
		"dashboard.table.empty":          "Nenhuma campanha",
		"dashboard.new.heading":          "Nova campanha",
		"dashboard.new.name":             "Nome da campanha",
		"dashboard.new.description":      "Descrição",
		"dashboard.new.target_url":       "URL de destino",
		"dashboard.new.emails":           "E-mails alvo (um por linha, máx. 100)",
		"dashboard.new.submit":           "Gerar links",
		"dashboard.links.heading":        "Links gerados",
		"dashboard.links.campaign_id":    "Campanha %s",
		"dashboard.links.expires":        "Os links expiram em %s",
		"dashboard.links.copy_all":       "Copiar todos",
		"dashboard.links.copied":         "Links copiados para a área de transferência.",
		"dashboard.links.close":          "Fechar",
		"dashboard.detail.total_clicks":  "Total de cliques",
		"dashboard.detail.unique_users":  "Usuários únicos",
		"dashboard.detail.unique_ips":    "IPs únicos",
		"dashboard.detail.period":        "Período",
		"dashboard.detail.export":        "Exportar CSV",
		"dashboard.error.no_emails":      "Informe pelo menos um e-mail.",
		"dashboard.error.no_selection":   "Nenhuma campanha selecionada.",
		"dashboard.error.unknown":        "Falha na requisição.",

		// Errors
		"error.rate_limited": "Muitas requisições. Aguarde um momento e tente novamente.",
		"error.in_progress":  "Já existe uma requisição em andamento.",
		"error.not_found":    "Página não encontrada",
		"error.internal":     "Erro interno do servidor",
		"error.bad_request":  "Requisição inválida.",
		"error.home":         "Voltar para o login",

		// Terminal
		"cli.export.saved": "Exportado para %s",

		// Link digest mail
		"mail.digest.subject":  "Links de phishing para %s",
		"mail.digest.greeting": "Olá",
		"mail.digest.intro":    "A campanha %s gerou %d links:",
		"mail.digest.expires":  "Os links expiram em %s.",
		"mail.digest.outro":    "Esta mensagem foi enviada automaticamente pelo console BrazucaPhish.",
		"mail.digest.untitled": "uma campanha sem nome",
		"mail.digest.button":   "Abrir painel",
	},
}
