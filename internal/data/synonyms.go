// Package data holds the static corpora published read-only at startup:
// the synonym table, the national guideline registry and the clinical
// questions extracted from those guidelines.
package data

// SynonymTable is the static table of medical-term equivalence classes.
// Each class mixes Japanese and Latin surface forms; classes are disjoint.
var SynonymTable = [][]string{
	{"脳卒中", "stroke", "cerebrovascular accident", "CVA", "脳血管障害"},
	{"脳梗塞", "cerebral infarction", "ischemic stroke"},
	{"リハビリテーション", "rehabilitation", "rehab", "リハビリ"},
	{"変形性膝関節症", "knee osteoarthritis", "knee OA", "膝OA"},
	{"変形性股関節症", "hip osteoarthritis", "hip OA"},
	{"大腿骨近位部骨折", "hip fracture", "proximal femoral fracture", "大腿骨頸部骨折"},
	{"心不全", "heart failure", "CHF", "congestive heart failure"},
	{"心筋梗塞", "myocardial infarction", "MI", "heart attack"},
	{"糖尿病", "diabetes", "diabetes mellitus", "DM"},
	{"高血圧", "hypertension", "high blood pressure"},
	{"誤嚥性肺炎", "aspiration pneumonia"},
	{"嚥下障害", "dysphagia", "swallowing disorder", "摂食嚥下障害"},
	{"サルコペニア", "sarcopenia"},
	{"フレイル", "frailty"},
	{"認知症", "dementia", "cognitive impairment"},
	{"パーキンソン病", "Parkinson disease", "Parkinson's disease", "PD"},
	{"脊髄損傷", "spinal cord injury", "SCI"},
	{"腰痛", "low back pain", "lumbago", "腰痛症"},
	{"廃用症候群", "disuse syndrome", "deconditioning"},
	{"運動療法", "exercise therapy", "therapeutic exercise"},
	{"理学療法", "physical therapy", "physiotherapy", "PT"},
	{"作業療法", "occupational therapy", "OT"},
	{"言語聴覚療法", "speech therapy", "speech-language therapy", "ST"},
	{"転倒", "fall", "falls", "転倒予防"},
	{"歩行", "gait", "walking", "歩行障害"},
	{"慢性閉塞性肺疾患", "COPD", "chronic obstructive pulmonary disease"},
	{"関節リウマチ", "rheumatoid arthritis", "RA"},
	{"骨粗鬆症", "osteoporosis"},
}

// JaQualitativeTerms are the Japanese qualitative-research terms used by
// the patient-voice branch, most specific first
var JaQualitativeTerms = []string{"質的研究", "患者の体験", "療養生活"}

// EnQualitativeTerms are the English qualitative filters used by the
// patient-voice branch, in filter order
var EnQualitativeTerms = []string{
	"qualitative research",
	"patient experience",
	"lived experience",
	"quality of life",
	"patient reported outcome",
	"patient perspective",
}

// TherapyLexicon is the small curated JA→EN lexicon used by the CQ-evidence
// keyword promotion when the synonym index has no Latin member for a term
var TherapyLexicon = map[string]string{
	"リハビリテーション": "rehabilitation",
	"リハビリ":      "rehabilitation",
	"運動療法":      "exercise therapy",
	"理学療法":      "physical therapy",
	"作業療法":      "occupational therapy",
	"言語聴覚療法":    "speech therapy",
	"薬物療法":      "pharmacotherapy",
	"手術療法":      "surgical treatment",
	"装具療法":      "orthotic treatment",
	"電気刺激":      "electrical stimulation",
	"温熱療法":      "thermotherapy",
	"栄養療法":      "nutrition therapy",
	"歩行訓練":      "gait training",
	"筋力増強訓練":    "strength training",
	"嚥下訓練":      "swallowing training",
}
