package ats

import (
	"regexp"
	"strings"
)

// Keyword categories searched by ExtractKeywords, in extraction order.
var (
	// technicalPattern matches languages, frameworks, platforms and tools.
	technicalPattern = regexp.MustCompile(`(?i)\b(?:JavaScript|TypeScript|Python|Java|C\+\+|C#|PHP|Ruby|Go|Rust|Swift|Kotlin|Scala|SQL|NoSQL|MySQL|PostgreSQL|MongoDB|Redis|SQLite|Oracle|React|Angular|Vue|Node\.js|Express|Django|Flask|Spring|Laravel|Rails|ASP\.NET|jQuery|Bootstrap|Tailwind|HTML|CSS|SASS|LESS|Git|GitHub|GitLab|Bitbucket|SVN|Docker|Kubernetes|Jenkins|Travis|CircleCI|AWS|Azure|GCP|Heroku|Vercel|Netlify|Linux|Ubuntu|CentOS|Windows|macOS|Apache|Nginx|REST|GraphQL|SOAP|JSON|XML|YAML|Microservices|API|SDK|CLI|DevOps|CI\/CD|TDD|BDD|Agile|Scrum|Kanban|Jira|Confluence|Slack|Teams|Zoom|Figma|Adobe|Photoshop|Illustrator|Sketch|InVision|Webpack|Vite|Babel|ESLint|Prettier|Jest|Cypress|Selenium|Postman|Swagger|OAuth|JWT|SSL|HTTPS|Firebase|Supabase|Stripe|PayPal|Twilio|SendGrid|Mailchimp|Google Analytics|GTM|SEO|SEM|PPC|CRM|ERP|Salesforce|HubSpot|Shopify|WordPress|Magento|WooCommerce|Drupal|Joomla|Terraform|Ansible|Puppet|Chef|Vagrant|Splunk|Tableau|Power BI|Excel|Pandas|NumPy|TensorFlow|PyTorch|Keras|Scikit-learn|Hadoop|Spark|Kafka|ElasticSearch|Logstash|Kibana|Prometheus|Grafana|New Relic|DataDog|Splunk)\b`)

	// actionVerbPattern matches past-tense achievement verbs.
	actionVerbPattern = regexp.MustCompile(`(?i)\b(?:achieved|accomplished|administered|advanced|analyzed|assessed|assisted|automated|built|calculated|collaborated|communicated|completed|conceived|conducted|configured|constructed|contributed|controlled|coordinated|created|customized|delivered|demonstrated|designed|developed|directed|drove|earned|enhanced|established|evaluated|exceeded|executed|expanded|expedited|facilitated|generated|guided|handled|headed|identified|implemented|improved|increased|initiated|innovated|installed|integrated|introduced|launched|led|leveraged|maintained|managed|maximized|mentored|minimized|modernized|monitored|negotiated|operated|optimized|organized|oversaw|participated|performed|planned|presented|processed|produced|programmed|promoted|provided|published|purchased|recommended|reduced|refined|reorganized|replaced|reported|researched|resolved|restructured|reviewed|revised|scheduled|secured|selected|simplified|solved|streamlined|strengthened|supervised|supported|surpassed|taught|tested|trained|transformed|updated|upgraded|utilized|validated|verified|accelerated|amplified|architected|attained|boosted|championed|consolidated|cultivated|diversified|elevated|empowered|engineered|executed|fostered|galvanized|harmonized|influenced|inspired|mobilized|navigated|orchestrated|pioneered|realized|revitalized|spearheaded|standardized|stimulated|synchronized|synthesized|troubleshot|unified|visualized)\b`)

	// metricPattern matches numbers followed by a unit or business measure.
	metricPattern = regexp.MustCompile(`(?i)\d+(?:\.\d+)?(?:%|\+|k|K|M|million|billion|thousand|\$|USD|EUR|GBP|INR|years?|months?|days?|hours?|weeks?|users?|customers?|clients?|projects?|teams?|members?|employees?|revenue|profit|sales|growth|increase|decrease|reduction|improvement|efficiency|productivity|ROI|KPI|target|goal|objective|milestone|budget|cost|saving|margin|conversion|retention|acquisition|engagement|satisfaction|performance|utilization|throughput|uptime|downtime|response|latency|accuracy|precision|recall|compliance|coverage|adoption|penetration|market share|volume|capacity|scalability|availability)`)

	// credentialPattern matches certifications, degrees and titles.
	credentialPattern = regexp.MustCompile(`(?i)\b(?:certified|certification|certificate|degree|bachelor|master|MBA|PhD|doctorate|licensed|accredited|qualified|trained|skilled|expert|specialist|professional|advanced|senior|lead|principal|architect|engineer|developer|analyst|consultant|manager|director|VP|CTO|CEO|CIO|CFO|CMO|CISSP|PMP|CISA|CISM|CEH|CISSP|CompTIA|AWS Certified|Azure Certified|Google Certified|Microsoft Certified|Oracle Certified|Salesforce Certified|Cisco Certified|VMware Certified|Red Hat Certified|Scrum Master|Product Owner|Six Sigma|ITIL|Prince2|TOGAF|CPA|CFA|SHRM|PHR|SPHR|GPHR|Lean|Kaizen|Black Belt|Green Belt|PRINCE2|COBIT|COSO|ISO|SOX|GDPR|HIPAA|PCI|DSS|NIST|OWASP|SANS|GIAC|CISSP|CISM|CRISC|CGEIT|CITT|MCSE|MCSA|MCITP|VCP|VCAP|VCDX)\b`)

	// businessPattern matches industry and business vocabulary.
	businessPattern = regexp.MustCompile(`(?i)\b(?:revenue|sales|profit|EBITDA|ROI|KPI|metrics|analytics|insights|strategy|strategic|operational|tactical|leadership|management|governance|compliance|audit|risk|security|innovation|transformation|digital|cloud|mobile|enterprise|scalability|performance|efficiency|productivity|quality|customer|client|stakeholder|vendor|partner|supplier|procurement|sourcing|logistics|supply chain|inventory|forecasting|budgeting|planning|analysis|reporting|dashboard|visualization|business intelligence|data science|machine learning|artificial intelligence|automation|optimization|process improvement|change management|project management|product management|program management|portfolio management|agile|lean|waterfall|methodology|framework|best practices|standards|procedures|policies|documentation|training|mentoring|coaching|development|career|professional|technical|functional|cross-functional|interdisciplinary|collaborative|teamwork|communication|presentation|negotiation|problem solving|critical thinking|analytical|creative|innovative|adaptable|flexible|detail-oriented|results-oriented|customer-focused|data-driven|solution-oriented|omnichannel|multi-channel|B2B|B2C|SaaS|PaaS|IaaS|fintech|edtech|healthtech|martech|adtech|e-commerce|marketplace|platform|ecosystem|workflow|integration|migration|deployment|infrastructure|architecture|framework|pipeline|workflow|orchestration|containerization|virtualization|monitoring|logging|alerting|incident|troubleshooting|root cause|resolution|escalation|communication|collaboration|stakeholder|cross-functional|matrix|remote|hybrid|onsite|offshore|nearshore|outsourcing|insourcing|vendor|third-party|partnership|alliance|consortium|joint venture)\b`)

	// softSkillPattern matches soft skills; separators between words are free.
	softSkillPattern = regexp.MustCompile(`(?i)\b(?:leadership|communication|teamwork|collaboration|problem.solving|analytical|critical.thinking|creativity|innovation|adaptability|flexibility|time.management|organization|attention.to.detail|customer.service|interpersonal|presentation|negotiation|conflict.resolution|decision.making|strategic.thinking|emotional.intelligence|cultural.awareness|cross.functional|multitasking|prioritization|initiative|self.motivated|results.oriented|goal.oriented|detail.oriented|customer.focused|quality.focused|process.improvement|continuous.learning|mentoring|coaching|training|documentation|reporting|research|analysis|relationship.building|stakeholder.management|change.management|crisis.management|conflict.management|stress.management|pressure.handling|deadline.management|budget.management|resource.management|people.management|talent.management|performance.management|risk.management|quality.assurance|customer.satisfaction|client.retention|business.development|market.research|competitive.analysis|strategic.planning|tactical.execution|operational.excellence|continuous.improvement|innovation.management|digital.transformation|cultural.transformation|organizational.development)\b`)

	// seniorityPattern matches role and seniority terms.
	seniorityPattern = regexp.MustCompile(`(?i)\b(?:senior|lead|principal|staff|director|manager|supervisor|coordinator|specialist|expert|consultant|architect|engineer|developer|analyst|associate|executive|vice president|VP|head of|chief|C-level|founder|co-founder|entrepreneur|owner|partner|stakeholder|board member|advisor|mentor|coach|trainer|instructor|facilitator|moderator|presenter|speaker|author|writer|editor|reviewer|contributor|collaborator|team member|individual contributor|IC|SME|subject matter expert)\b`)

	// industryPattern matches industry verticals and functional domains.
	industryPattern = regexp.MustCompile(`(?i)\b(?:technology|software|hardware|telecommunications|fintech|finance|banking|insurance|healthcare|pharma|biotech|manufacturing|automotive|aerospace|energy|utilities|retail|e-commerce|consumer goods|media|entertainment|gaming|education|edtech|non-profit|government|defense|consulting|professional services|real estate|construction|logistics|transportation|hospitality|travel|food|beverage|agriculture|mining|oil|gas|renewable|sustainability|environment|legal|compliance|audit|tax|accounting|human resources|HR|marketing|advertising|public relations|PR|sales|business development|operations|supply chain|procurement|IT|information technology|cybersecurity|data|analytics|AI|ML|cloud|mobile|web|digital|social|content|design|UX|UI|product|project|program|portfolio|quality|testing|support|maintenance|training|documentation)\b`)
)

var keywordPatterns = []*regexp.Regexp{
	technicalPattern,
	actionVerbPattern,
	metricPattern,
	credentialPattern,
	businessPattern,
	softSkillPattern,
	seniorityPattern,
	industryPattern,
}

// Narrower patterns that feed the individual score terms.
var (
	scoreMetricPattern    = regexp.MustCompile(`(?i)\d+(?:\.\d+)?(?:%|\+|k|K|M|million|billion|thousand|\$|USD|EUR|GBP|INR)`)
	scoreTechnicalPattern = regexp.MustCompile(`(?i)\b(?:JavaScript|TypeScript|Python|Java|React|Angular|Vue|Node|SQL|AWS|Azure|Docker|Kubernetes|Git|API|REST|GraphQL|DevOps|Agile|Scrum|Jira|Tableau|Excel|Salesforce|CRM|ERP)\b`)
	scoreCertPattern      = regexp.MustCompile(`(?i)\b(?:certified|certification|PMP|CISSP|AWS Certified|Azure Certified|Google Certified|Microsoft Certified|Oracle Certified|Salesforce Certified|Scrum Master|Six Sigma|ITIL|Prince2|TOGAF|CPA|CFA)\b`)
)

// ExtractKeywords returns every keyword hit in text, lowercased and
// deduplicated in first-seen order across the categories.
func ExtractKeywords(text string) []string {
	if text == "" {
		return []string{}
	}
	seen := make(map[string]struct{})
	keywords := []string{}
	for _, p := range keywordPatterns {
		for _, m := range p.FindAllString(text, -1) {
			kw := strings.ToLower(m)
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
