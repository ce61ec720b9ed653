// Package curriculum holds the compiled-in biotechnology curriculum and
// exposes it as a flat corpus for retrieval ingestion.
//
// The corpus is trusted, static data: loading never fails, and repeated
// loads produce an identical ordered chunk sequence.
package curriculum

// Entry is a single titled content block inside a topic.
type Entry struct {
	Title string
	Text  string
}

// Topic is one curriculum unit. Topics are addressable both by their map
// key (e.g. "genetic_engineering") and by their short ID ("gen_eng_201").
type Topic struct {
	Key           string
	ID            string
	Name          string
	Description   string
	Difficulty    string
	Prerequisites []string
	Subtopics     []string
	Content       []Entry
}

// SourceTag labels every corpus chunk with its provenance.
const SourceTag = "BioMentor AI Curriculum"

// topicOrder fixes the iteration order of the curriculum map so that the
// flattened corpus is deterministic.
var topicOrder = []string{
	"molecular_biology_fundamentals",
	"genetic_engineering",
	"bioinformatics",
	"bioprocess_engineering",
	"immunology_and_vaccines",
	"industrial_biotechnology",
}

var topics = map[string]Topic{
	"molecular_biology_fundamentals": {
		Key:         "molecular_biology_fundamentals",
		ID:          "mol_bio_101",
		Name:        "Molecular Biology Fundamentals",
		Description: "Core concepts of molecular biology essential for biotechnology",
		Difficulty:  "beginner",
		Subtopics: []string{
			"DNA Structure and Replication",
			"RNA Types and Transcription",
			"Protein Synthesis and Translation",
			"Gene Expression Regulation",
			"Central Dogma of Molecular Biology",
		},
		Content: []Entry{
			{
				Title: "DNA Structure and Replication",
				Text: `DNA (Deoxyribonucleic Acid) is the hereditary material in nearly all living organisms. Its double-helix structure was elucidated by Watson and Crick in 1953, building on X-ray crystallography work by Rosalind Franklin. Each nucleotide contains a deoxyribose sugar, a phosphate group, and one of four nitrogenous bases: Adenine, Thymine, Guanine, or Cytosine.

Base pairing follows Chargaff's rules: Adenine always pairs with Thymine via 2 hydrogen bonds, and Guanine pairs with Cytosine via 3 hydrogen bonds. This complementary pairing is fundamental to replication and transcription.

DNA replication is semi-conservative: each new molecule contains one original strand and one newly synthesized strand. Helicase unwinds the double helix by breaking hydrogen bonds. Primase synthesizes short RNA primers. DNA Polymerase III adds nucleotides 5' to 3', DNA Polymerase I replaces the RNA primers with DNA, Ligase joins Okazaki fragments on the lagging strand, and Topoisomerase relieves tension ahead of the replication fork.

Understanding DNA structure is critical for PCR, gene cloning, DNA sequencing, and CRISPR gene editing technologies.`,
			},
			{
				Title: "RNA Types and Transcription",
				Text: `RNA is typically single-stranded, contains ribose sugar, and uses Uracil instead of Thymine. mRNA carries genetic information from DNA to the ribosome; tRNA delivers amino acids using anticodon pairing; rRNA forms the structural and catalytic core of the ribosome. Regulatory species include miRNA and siRNA, both exploited by RNA interference therapeutics.

Transcription proceeds in three phases. During initiation, RNA Polymerase binds the promoter (the TATA box in eukaryotes) with the help of general transcription factors. During elongation the polymerase synthesizes mRNA 5' to 3', reading the template strand 3' to 5'. Termination in eukaryotes is linked to the polyadenylation signal AAUAAA.

Biotechnology applications include mRNA vaccines built on modified nucleosides, RNAi therapeutics for gene silencing, and antisense oligonucleotides for treating genetic disease.`,
			},
			{
				Title: "Protein Synthesis and Translation",
				Text: `Translation synthesizes proteins from mRNA templates at the ribosome. The genetic code comprises 64 codons: 61 encode amino acids and 3 are stop codons. AUG is the start codon, encoding methionine.

Initiation positions the initiator tRNA at the start codon; elongation repeats a three-step cycle of aminoacyl-tRNA binding, peptide bond formation by peptidyl transferase, and translocation; termination occurs when a stop codon reaches the A site and release factors free the polypeptide.

Recombinant protein production in E. coli, yeast, and CHO cells depends on translation machinery, and codon optimization is routinely used to boost heterologous expression.`,
			},
		},
	},
	"genetic_engineering": {
		Key:           "genetic_engineering",
		ID:            "gen_eng_201",
		Name:          "Genetic Engineering",
		Description:   "Techniques for modifying genetic material and their applications",
		Difficulty:    "intermediate",
		Prerequisites: []string{"molecular_biology_fundamentals"},
		Subtopics: []string{
			"Restriction Enzymes and Cloning",
			"PCR and DNA Amplification",
			"CRISPR-Cas9 Gene Editing",
			"Gene Therapy Approaches",
			"Transgenic Organisms",
		},
		Content: []Entry{
			{
				Title: "CRISPR-Cas9 Gene Editing",
				Text: `CRISPR-Cas9 is a revolutionary gene editing system adapted from a bacterial adaptive immune mechanism. A single guide RNA (sgRNA) contains a 20-nucleotide sequence complementary to the target DNA and directs the Cas9 nuclease to the matching genomic site, where Cas9 introduces a double-strand break three base pairs upstream of the PAM sequence.

The cell repairs the break by non-homologous end joining, which is error-prone and useful for gene knockouts, or by homology-directed repair, which can introduce precise edits when a repair template is supplied.

Applications span basic research, agriculture, and medicine, including the approved CRISPR therapy for sickle cell disease. Base editing and prime editing extend the toolkit with single-nucleotide precision that avoids double-strand breaks.`,
			},
			{
				Title: "PCR and DNA Amplification",
				Text: `The Polymerase Chain Reaction (PCR) amplifies specific DNA sequences exponentially. Each cycle has three steps: denaturation at 94-98°C separates the strands, annealing at 50-65°C lets primers bind their targets, and extension at 72°C lets a thermostable polymerase such as Taq synthesize new strands.

Thirty cycles yield roughly a billion copies of the target. Variants include quantitative real-time PCR for measuring template abundance, reverse-transcription PCR for RNA templates, and digital PCR for absolute quantification.

PCR underpins molecular diagnostics, forensic DNA profiling, cloning workflows, and pathogen detection.`,
			},
			{
				Title: "Restriction Enzymes and Cloning",
				Text: `Restriction endonucleases cut DNA at specific recognition sequences, typically 4-8 base-pair palindromes, leaving sticky or blunt ends. Together with DNA ligase they enable recombinant DNA construction: a gene of interest is inserted into a plasmid vector carrying an origin of replication, a selectable marker, and a multiple cloning site.

Transformed host cells are selected on antibiotic media and screened, classically by blue-white screening. Molecular cloning is the foundation of recombinant protein production, from human insulin onward.`,
			},
		},
	},
	"bioinformatics": {
		Key:           "bioinformatics",
		ID:            "bioinfo_301",
		Name:          "Bioinformatics and Computational Biology",
		Description:   "Computational methods for analyzing biological data",
		Difficulty:    "intermediate",
		Prerequisites: []string{"molecular_biology_fundamentals"},
		Subtopics: []string{
			"Sequence Alignment and Analysis",
			"Genomics and Genome Assembly",
			"Proteomics and Structural Biology",
			"Phylogenetics",
			"Machine Learning in Biology",
		},
		Content: []Entry{
			{
				Title: "Sequence Alignment and Analysis",
				Text: `Sequence alignment identifies regions of similarity between DNA, RNA, or protein sequences that may reflect functional or evolutionary relationships. Global alignment (Needleman-Wunsch) aligns sequences end to end, while local alignment (Smith-Waterman) finds the best-matching subsequences. BLAST trades exactness for speed and is the workhorse of database search.

Scoring uses substitution matrices such as BLOSUM62 for proteins, with gap-open and gap-extension penalties. Multiple sequence alignment tools like Clustal Omega and MAFFT reveal conserved motifs and feed phylogenetic reconstruction.`,
			},
			{
				Title: "Genomics and Genome Assembly",
				Text: `High-throughput sequencing produces millions of short reads that must be assembled into contiguous sequence. De novo assembly uses overlap graphs or de Bruijn graphs, while reference-guided assembly maps reads onto an existing genome. Long-read platforms from PacBio and Oxford Nanopore resolve repeats that defeat short-read assemblers.

Assembly quality is judged by metrics such as N50 and completeness benchmarks. Annotated genomes power comparative genomics, variant calling, and the discovery of biosynthetic gene clusters relevant to drug development.`,
			},
		},
	},
	"bioprocess_engineering": {
		Key:           "bioprocess_engineering",
		ID:            "bpe_401",
		Name:          "Bioprocess Engineering",
		Description:   "Design and operation of biological production processes",
		Difficulty:    "advanced",
		Prerequisites: []string{"molecular_biology_fundamentals", "genetic_engineering"},
		Subtopics: []string{
			"Fermentation Technology",
			"Bioreactor Design",
			"Downstream Processing and Purification",
			"Scale-up Considerations",
			"Process Analytics",
		},
		Content: []Entry{
			{
				Title: "Fermentation Technology",
				Text: `Industrial fermentation cultivates microorganisms or cell lines at scale to produce biomass, metabolites, or recombinant proteins. Batch fermentation is simple but limited by substrate inhibition; continuous fermentation holds cells at steady state; fed-batch fermentation controls the nutrient feed rate to avoid substrate inhibition and catabolite repression while reaching very high cell densities.

Fed-batch is the dominant mode for recombinant protein production. Critical parameters include dissolved oxygen, pH, temperature, and feed composition, all monitored and controlled continuously.

Classic products range from antibiotics like penicillin to modern biologics produced in E. coli and CHO cell culture.`,
			},
			{
				Title: "Downstream Processing and Purification",
				Text: `Downstream processing recovers and purifies the product after fermentation, often accounting for the majority of production cost. Typical stages are cell harvest by centrifugation or filtration, cell disruption when the product is intracellular, capture chromatography, polishing steps, and final formulation.

Chromatography modes include affinity (Protein A for antibodies), ion exchange, size exclusion, and hydrophobic interaction. Each added step raises purity but lowers overall yield, so process design balances the two against regulatory purity requirements.`,
			},
		},
	},
	"immunology_and_vaccines": {
		Key:           "immunology_and_vaccines",
		ID:            "imm_vax_501",
		Name:          "Immunology and Vaccine Technology",
		Description:   "Immune system function and modern vaccine platforms",
		Difficulty:    "advanced",
		Prerequisites: []string{"molecular_biology_fundamentals"},
		Subtopics: []string{
			"Innate and Adaptive Immunity",
			"Antibody Structure and Function",
			"Modern Vaccine Platforms",
			"Monoclonal Antibody Production",
			"CAR-T Cell Therapy",
		},
		Content: []Entry{
			{
				Title: "Modern Vaccine Platforms",
				Text: `Vaccines train the adaptive immune system to recognize a pathogen before infection. Classical platforms use inactivated or live-attenuated pathogens; subunit vaccines present purified antigens with adjuvants.

mRNA vaccines deliver nucleoside-modified mRNA in lipid nanoparticles, turning the recipient's cells into transient antigen factories. The platform's speed — sequence to clinic in weeks — was demonstrated during the COVID-19 pandemic. Viral-vector vaccines instead deliver the antigen gene inside a replication-deficient adenovirus.

Key design considerations include antigen selection, cold-chain stability, and the balance of humoral versus cellular immunity each platform elicits.`,
			},
			{
				Title: "CAR-T Cell Therapy",
				Text: `Chimeric Antigen Receptor T-cell therapy engineers a patient's own T cells to attack tumors. T cells are collected by leukapheresis, transduced with a CAR construct that fuses an antibody-derived recognition domain to T-cell activation domains, expanded ex vivo, and reinfused.

Approved CAR-T products target CD19 in B-cell malignancies and BCMA in multiple myeloma. Major toxicities are cytokine release syndrome and neurotoxicity, managed with IL-6 blockade and supportive care. Current research aims at allogeneic off-the-shelf products and solid-tumor targets.`,
			},
		},
	},
	"industrial_biotechnology": {
		Key:           "industrial_biotechnology",
		ID:          "ind_bio_601",
		Name:        "Industrial and Environmental Biotechnology",
		Description: "Biotechnology applications in industry and the environment",
		Difficulty:  "intermediate",
		Subtopics: []string{
			"Enzyme Technology",
			"Biofuels and Bioenergy",
			"Bioremediation",
			"Biopolymers and Biomaterials",
			"Synthetic Biology Applications",
		},
		Content: []Entry{
			{
				Title: "Enzyme Technology",
				Text: `Enzymes are biological catalysts used across detergents, food processing, textiles, and pharmaceuticals. Industrial enzymes are produced by fermentation of engineered microbial strains and are often immobilized on solid supports to allow reuse and continuous operation.

Protein engineering by directed evolution — iterative rounds of mutagenesis and selection — tailors enzymes for stability at process temperatures and pH. Frances Arnold's Nobel-recognized work established the approach.`,
			},
			{
				Title: "Bioremediation",
				Text: `Bioremediation uses microorganisms to degrade environmental pollutants. In situ approaches treat contamination in place by biostimulation (adding nutrients or electron acceptors) or bioaugmentation (adding specialized degrader strains); ex situ approaches excavate material for treatment in biopiles or bioreactors.

Well-studied systems include hydrocarbon-degrading Pseudomonas and Alcanivorax after oil spills, and reductive dechlorination of solvents by Dehalococcoides. Constructed wetlands and microbial fuel cells extend the toolbox toward wastewater and resource recovery.`,
			},
		},
	},
}
